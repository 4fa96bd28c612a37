package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/alama/core/grade"
	"github.com/trezcool/alama/core/subject"
	exportsvc "github.com/trezcool/alama/services/export"
)

type gradeApi struct {
	svc        *grade.Service
	subjectSvc *subject.Service
	validate   *validator.Validate
}

// SaveGradesRequest is the bulk "Save Grades" payload for one subject.
type SaveGradesRequest struct {
	Entries []grade.Entry `json:"entries" validate:"required,dive"`
}

func registerGradeAPI(g *echo.Group, svc *grade.Service, subjectSvc *subject.Service, validate *validator.Validate) {
	api := gradeApi{
		svc:        svc,
		subjectSvc: subjectSvc,
		validate:   validate,
	}

	sg := g.Group("/subjects/:id")
	sg.GET("/grades", api.view)
	sg.PUT("/grades", api.save)
	sg.GET("/report", api.report)
	sg.GET("/report/pdf", api.reportPDF)
}

func (api *gradeApi) getSubject(ctx echo.Context) (subject.Subject, error) {
	return api.subjectSvc.GetByID(ctx.Request().Context(), ctx.Param("id"))
}

// Handlers

func (api *gradeApi) view(ctx echo.Context) error {
	sub, err := api.getSubject(ctx)
	if err != nil {
		return err
	}

	view, err := api.svc.GradeView(ctx.Request().Context(), sub.ID)
	if err != nil {
		return errors.Wrap(err, "loading grade view")
	}
	return ctx.JSON(http.StatusOK, view)
}

func (api *gradeApi) save(ctx echo.Context) error {
	sub, err := api.getSubject(ctx)
	if err != nil {
		return err
	}

	var data SaveGradesRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to SaveGradesRequest")
	}
	if err := api.validate.Struct(&data); err != nil {
		return err
	}

	if err := api.svc.SaveAll(ctx.Request().Context(), sub.ID, data.Entries); err != nil {
		return errors.Wrap(err, "saving grades")
	}

	view, err := api.svc.GradeView(ctx.Request().Context(), sub.ID)
	if err != nil {
		return errors.Wrap(err, "loading grade view")
	}
	return ctx.JSON(http.StatusOK, view)
}

func (api *gradeApi) report(ctx echo.Context) error {
	sub, err := api.getSubject(ctx)
	if err != nil {
		return err
	}

	view, err := api.svc.GradeView(ctx.Request().Context(), sub.ID)
	if err != nil {
		return errors.Wrap(err, "loading grade view")
	}
	return ctx.JSON(http.StatusOK, grade.BuildReport(view))
}

func (api *gradeApi) reportPDF(ctx echo.Context) error {
	sub, err := api.getSubject(ctx)
	if err != nil {
		return err
	}

	view, err := api.svc.GradeView(ctx.Request().Context(), sub.ID)
	if err != nil {
		return errors.Wrap(err, "loading grade view")
	}

	buf, err := exportsvc.GradeReportPDF(sub.Name, view)
	if err != nil {
		return errors.Wrap(err, "exporting grade report")
	}
	return ctx.Blob(http.StatusOK, "application/pdf", buf.Bytes())
}
