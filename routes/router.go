// file: routes/router.go
package routes

import (
	"github.com/IkedaLab-Daniel/BambaCTF/controllers"
	"github.com/IkedaLab-Daniel/BambaCTF/middlewares"
	"github.com/IkedaLab-Daniel/BambaCTF/models"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	apiV1 := r.Group("/api/v1")
	{
		// --- 用户 ---
		usersPublic := apiV1.Group("/users")
		{
			usersPublic.POST("/register", controllers.Register)
			usersPublic.POST("/login", controllers.Login)
		}
		usersAuth := apiV1.Group("/users")
		usersAuth.Use(middlewares.JWTAuthMiddleware())
		{
			usersAuth.GET("/:id", controllers.GetUserDetail)
		}
		adminRoutes := apiV1.Group("/admin")
		adminRoutes.Use(middlewares.JWTAuthMiddleware(), middlewares.RoleAuthMiddleware(models.RoleAdmin))
		{
			adminRoutes.GET("/users", controllers.GetUserList)
			adminRoutes.DELETE("/users/:id", controllers.DeleteUser)

			// AI 助手调用审计
			adminRoutes.POST("/ai-logs", controllers.CreateAILog)
			adminRoutes.GET("/ai-logs", controllers.ListAILogs)
			adminRoutes.GET("/ai-logs/:id", controllers.GetAILogDetail)
			adminRoutes.DELETE("/ai-logs/:id", controllers.DeleteAILog)
		}

		// --- 题目分类 ---
		categoryRoutes := apiV1.Group("/categories")
		{
			// 公开接口
			categoryRoutes.GET("", controllers.GetCategoryList)
			categoryRoutes.GET("/:id", controllers.GetCategoryDetail)

			// 管理员接口
			categoryRoutes.POST("", middlewares.JWTAuthMiddleware(), middlewares.RoleAuthMiddleware(models.RoleAdmin), controllers.CreateCategory)
			categoryRoutes.PUT("/:id", middlewares.JWTAuthMiddleware(), middlewares.RoleAuthMiddleware(models.RoleAdmin), controllers.UpdateCategory)
			categoryRoutes.DELETE("/:id", middlewares.JWTAuthMiddleware(), middlewares.RoleAuthMiddleware(models.RoleAdmin), controllers.DeleteCategory)
		}

		// --- 题目 ---
		challengeRoutes := apiV1.Group("/challenges")
		{
			// 公开浏览（响应不含 Flag）
			challengeRoutes.GET("", middlewares.JWTTryAuthMiddleware(), controllers.ListChallenges)
			challengeRoutes.GET("/:id", middlewares.JWTTryAuthMiddleware(), controllers.GetChallengeDetail)

			// 核心操作：申请实例 / 提交 Flag
			challengeRoutes.POST("/:id/start", middlewares.JWTAuthMiddleware(), controllers.StartChallenge)
			challengeRoutes.POST("/:id/submit", middlewares.JWTAuthMiddleware(), controllers.SubmitFlag)

			// 管理员接口
			challengeRoutes.POST("", middlewares.JWTAuthMiddleware(), middlewares.RoleAuthMiddleware(models.RoleAdmin), controllers.CreateChallenge)
			challengeRoutes.PUT("/:id", middlewares.JWTAuthMiddleware(), middlewares.RoleAuthMiddleware(models.RoleAdmin), controllers.UpdateChallenge)
			challengeRoutes.DELETE("/:id", middlewares.JWTAuthMiddleware(), middlewares.RoleAuthMiddleware(models.RoleAdmin), controllers.DeleteChallenge)
		}

		// --- 队伍 ---
		teamRoutes := apiV1.Group("/teams")
		teamRoutes.Use(middlewares.JWTAuthMiddleware())
		{
			teamRoutes.POST("", controllers.CreateTeam)
			teamRoutes.GET("", controllers.GetTeamList)
			teamRoutes.GET("/:id", controllers.GetTeamDetail)
			teamRoutes.GET("/:id/members", controllers.GetTeamMembers)
			teamRoutes.PUT("/:id", controllers.UpdateTeam)
			teamRoutes.DELETE("/:id", controllers.DeleteTeam)
			teamRoutes.POST("/:id/members", controllers.AddMember)
			teamRoutes.DELETE("/:id/members/:user_id", controllers.RemoveMember)
		}

		// --- 实例 ---
		instanceRoutes := apiV1.Group("/instances")
		instanceRoutes.Use(middlewares.JWTAuthMiddleware())
		{
			instanceRoutes.GET("", controllers.ListInstances)
			instanceRoutes.GET("/:id", controllers.GetInstanceDetail)
			instanceRoutes.POST("/:id/terminate", controllers.TerminateInstance)
		}

		// --- 提交记录 ---
		submissionRoutes := apiV1.Group("/submissions")
		submissionRoutes.Use(middlewares.JWTAuthMiddleware())
		{
			submissionRoutes.GET("", controllers.ListSubmissions)
			submissionRoutes.GET("/:id", controllers.GetSubmissionDetail)
		}

		// --- 排行榜 ---
		apiV1.GET("/scoreboard", controllers.GetScoreboard)
	}

	return r
}
