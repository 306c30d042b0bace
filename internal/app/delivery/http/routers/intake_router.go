package routers

import (
	"fmt"
	"intake-service/internal/app/delivery/http/controllers"
	"intake-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachIntakeRoutes(router chi.Router, intakeController *controllers.IntakeController) {
	sessionPath := fmt.Sprintf("/{%s}", constvars.URLParamSessionID)

	router.Post("/", intakeController.StartSession)
	router.Post("/resume", intakeController.ResumeSession)
	router.Post(sessionPath+"/turns", intakeController.SubmitTurn)
	router.Post(sessionPath+"/pause", intakeController.PauseSession)
	router.Post(sessionPath+"/finish", intakeController.FinishSession)
	router.Get(sessionPath+"/reports", intakeController.GetReports)
}
