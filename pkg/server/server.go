package server

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/maximthomas/taskboard/pkg/config"
	"github.com/maximthomas/taskboard/pkg/controller"
	"github.com/maximthomas/taskboard/pkg/dashboard"
	"github.com/maximthomas/taskboard/pkg/middleware"
	"github.com/pkg/errors"
	cors "github.com/rs/cors/wrapper/gin"
)

// maxUploadMemory bounds the multipart form kept in memory, the rest spills to disk
const maxUploadMemory = 32 << 20

func SetupRouter(conf config.Config) (*gin.Engine, error) {
	dr, err := dashboard.NewRouter(conf)
	if err != nil {
		return nil, errors.Wrap(err, "error creating task router")
	}
	return setupRouter(conf, dr), nil
}

func setupRouter(conf config.Config, dr *dashboard.Router) *gin.Engine {
	router := gin.Default()
	router.MaxMultipartMemory = maxUploadMemory
	c := cors.New(cors.Options{
		AllowedOrigins:   conf.Server.Cors.AllowedOrigins,
		AllowCredentials: true,
		Debug:            gin.IsDebugging(),
	})

	rid := middleware.NewRequestIDMiddleware()

	router.Use(c, rid)
	var tc = controller.NewTaskController(dr)

	v1 := router.Group("/taskboard/v1")
	{
		tasks := v1.Group("/tasks")
		{
			tasks.GET("", tc.Menu)
			route := "/:task"
			tasks.GET(route, tc.Form)
			tasks.POST(route, tc.Submit)
		}
	}
	return router
}

func RunServer() error {
	conf := config.GetConfig()
	router, err := SetupRouter(conf)
	if err != nil {
		return err
	}
	return router.Run(":" + strconv.Itoa(conf.Server.Port))
}
