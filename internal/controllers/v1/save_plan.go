package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/moneymate/backend/internal/engine"
	"github.com/moneymate/backend/internal/httputil"
	"github.com/moneymate/backend/internal/service"
)

// RegisterSavePlanRoutes registers the routes for save plans with
// the RouterGroup that is passed.
func (co Controller) RegisterSavePlanRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", co.OptionsSavePlanList)
		r.GET("", co.GetSavePlans)
		r.POST("", co.CreateSavePlans)
		r.GET("/stream", co.StreamSavePlans)
	}

	// Save plan with ID
	{
		r.OPTIONS("/:id", co.OptionsSavePlanDetail)
		r.GET("/:id", co.GetSavePlan)
		r.PATCH("/:id", co.UpdateSavePlan)
		r.DELETE("/:id", co.DeleteSavePlan)
		r.OPTIONS("/:id/executed", co.OptionsSavePlanExecuted)
		r.PUT("/:id/executed", co.SetSavePlanExecuted)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Save Plans
// @Success		204
// @Router			/v1/save-plans [options]
func (co Controller) OptionsSavePlanList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Save Plans
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/save-plans/{id} [options]
func (co Controller) OptionsSavePlanDetail(c *gin.Context) {
	if _, ok := co.savePlanFromURI(c); !ok {
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Save Plans
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/save-plans/{id}/executed [options]
func (co Controller) OptionsSavePlanExecuted(c *gin.Context) {
	if _, ok := co.savePlanFromURI(c); !ok {
		return
	}

	httputil.OptionsPut(c)
}

// savePlanFromURI returns the ID of the save plan in the URI after verifying
// that the plan exists. If it does not, the error response is written.
func (co Controller) savePlanFromURI(c *gin.Context) (uuid.UUID, bool) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return uuid.Nil, false
	}

	_, err = co.services.SavePlans.Get(c.Request.Context(), uri.ID.UUID)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return uuid.Nil, false
	}

	return uri.ID.UUID, true
}

// @Summary		Create save plans
// @Description	Creates new save plans. New plans are not executed for the current month.
// @Tags			Save Plans
// @Produce		json
// @Success		201			{object}	SavePlanCreateResponse
// @Failure		400			{object}	SavePlanCreateResponse
// @Failure		404			{object}	SavePlanCreateResponse
// @Failure		500			{object}	SavePlanCreateResponse
// @Param			savePlans	body		[]SavePlanEditable	true	"Save plans"
// @Router			/v1/save-plans [post]
func (co Controller) CreateSavePlans(c *gin.Context) {
	var editables []SavePlanEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SavePlanCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := SavePlanCreateResponse{}

	for _, editable := range editables {
		var result service.Result
		plan, err := co.services.SavePlans.Add(c.Request.Context(), editable.input(uuid.Nil), &result)
		if err != nil {
			status = r.appendError(err, message(err, result), status)
			continue
		}

		data := co.newSavePlan(c, engine.SavePlanView{SavePlan: plan})
		r.Data = append(r.Data, SavePlanResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get save plans
// @Description	Returns the save plans as seen in the current month, together with their totals.
// @Description	Plans executed in an earlier month are reset to not executed.
// @Tags			Save Plans
// @Produce		json
// @Success		200	{object}	SavePlanListResponse
// @Failure		400	{object}	SavePlanListResponse
// @Failure		500	{object}	SavePlanListResponse
// @Router			/v1/save-plans [get]
// @Param			title		query	string	false	"Filter by title, supports * as wildcard"
// @Param			category	query	string	false	"Filter by category"
// @Param			selected	query	string	false	"ID of the selected save plan"
func (co Controller) GetSavePlans(c *gin.Context) {
	var filter SavePlanQueryFilter
	err := c.ShouldBindQuery(&filter)
	if err != nil {
		s := httputil.ErrInvalidQueryString.Error()
		c.JSON(status(err), SavePlanListResponse{
			Error: &s,
		})
		return
	}

	list, err := co.services.SavePlans.List(c.Request.Context())
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SavePlanListResponse{
			Error: &s,
		})
		return
	}

	data := co.newSavePlanList(c, list, filter)
	c.JSON(http.StatusOK, SavePlanListResponse{Data: &data})
}

// @Summary		Stream save plans
// @Description	Sends the save plan list as server-sent event "save-plans" now and every time the plans change
// @Tags			Save Plans
// @Produce		text/event-stream
// @Success		200	{object}	SavePlanList
// @Failure		400	{object}	httpError
// @Failure		500	{object}	httpError
// @Router			/v1/save-plans/stream [get]
// @Param			title		query	string	false	"Filter by title, supports * as wildcard"
// @Param			category	query	string	false	"Filter by category"
// @Param			selected	query	string	false	"ID of the selected save plan"
func (co Controller) StreamSavePlans(c *gin.Context) {
	var filter SavePlanQueryFilter
	err := c.ShouldBindQuery(&filter)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: httputil.ErrInvalidQueryString.Error(),
		})
		return
	}

	lists, err := co.services.SavePlans.ListFlow(c.Request.Context())
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	stream(c, "save-plans", lists, func(list engine.SavePlanList) any {
		return co.newSavePlanList(c, list, filter)
	})
}

// @Summary		Get save plan
// @Description	Returns a specific save plan as seen in the current month
// @Tags			Save Plans
// @Produce		json
// @Success		200	{object}	SavePlanResponse
// @Failure		400	{object}	SavePlanResponse
// @Failure		404	{object}	SavePlanResponse
// @Failure		500	{object}	SavePlanResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/save-plans/{id} [get]
func (co Controller) GetSavePlan(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SavePlanResponse{
			Error: &s,
		})
		return
	}

	plan, err := co.services.SavePlans.Get(c.Request.Context(), uri.ID.UUID)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SavePlanResponse{
			Error: &s,
		})
		return
	}

	data := co.newSavePlan(c, engine.SavePlanView{SavePlan: plan})
	c.JSON(http.StatusOK, SavePlanResponse{Data: &data})
}

// @Summary		Update save plan
// @Description	Update an existing save plan. Only values to be updated need to be specified. The execution state is kept.
// @Tags			Save Plans
// @Accept			json
// @Produce		json
// @Success		200			{object}	SavePlanResponse
// @Failure		400			{object}	SavePlanResponse
// @Failure		404			{object}	SavePlanResponse
// @Failure		500			{object}	SavePlanResponse
// @Param			id			path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			savePlan	body		SavePlanEditable	true	"Save plan"
// @Router			/v1/save-plans/{id} [patch]
func (co Controller) UpdateSavePlan(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SavePlanResponse{
			Error: &s,
		})
		return
	}

	plan, err := co.services.SavePlans.Get(c.Request.Context(), uri.ID.UUID)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SavePlanResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, SavePlanEditable{})
	if err == nil && len(updateFields) == 0 {
		err = errNoUpdateFields
	}
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SavePlanResponse{
			Error: &s,
		})
		return
	}

	// Fields not in the body keep their current value
	data := savePlanEditable(plan)
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SavePlanResponse{
			Error: &s,
		})
		return
	}

	var result service.Result
	plan, err = co.services.SavePlans.Add(c.Request.Context(), data.input(plan.ID), &result)
	if err != nil {
		s := message(err, result)
		c.JSON(status(err), SavePlanResponse{
			Error: &s,
		})
		return
	}

	r := co.newSavePlan(c, engine.SavePlanView{SavePlan: plan})
	c.JSON(http.StatusOK, SavePlanResponse{Data: &r})
}

// @Summary		Set execution state
// @Description	Sets whether the saving has been made in the current month
// @Tags			Save Plans
// @Accept			json
// @Produce		json
// @Success		200			{object}	SavePlanResponse
// @Failure		400			{object}	SavePlanResponse
// @Failure		404			{object}	SavePlanResponse
// @Failure		500			{object}	SavePlanResponse
// @Param			id			path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			executed	body		ExecutedEditable	true	"Execution state"
// @Router			/v1/save-plans/{id}/executed [put]
func (co Controller) SetSavePlanExecuted(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SavePlanResponse{
			Error: &s,
		})
		return
	}

	var data ExecutedEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SavePlanResponse{
			Error: &s,
		})
		return
	}

	var result service.Result
	plan, err := co.services.SavePlans.SetExecuted(c.Request.Context(), uri.ID.UUID, *data.Executed, &result)
	if err != nil {
		s := message(err, result)
		c.JSON(status(err), SavePlanResponse{
			Error: &s,
		})
		return
	}

	r := co.newSavePlan(c, engine.SavePlanView{SavePlan: plan})
	c.JSON(http.StatusOK, SavePlanResponse{Data: &r})
}

// @Summary		Delete save plan
// @Description	Deletes a save plan
// @Tags			Save Plans
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/save-plans/{id} [delete]
func (co Controller) DeleteSavePlan(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var result service.Result
	err = co.services.SavePlans.Delete(c.Request.Context(), uri.ID.UUID, &result)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: message(err, result),
		})
		return
	}

	c.Status(http.StatusNoContent)
}
