package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/moneymate/backend/internal/engine"
	"github.com/moneymate/backend/internal/httputil"
	"github.com/moneymate/backend/internal/service"
)

// RegisterSpendingPlanRoutes registers the routes for spending plans with
// the RouterGroup that is passed.
func (co Controller) RegisterSpendingPlanRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", co.OptionsSpendingPlanList)
		r.GET("", co.GetSpendingPlans)
		r.POST("", co.CreateSpendingPlans)
		r.GET("/stream", co.StreamSpendingPlans)
	}

	// Spending plan with ID
	{
		r.OPTIONS("/:id", co.OptionsSpendingPlanDetail)
		r.GET("/:id", co.GetSpendingPlan)
		r.PATCH("/:id", co.UpdateSpendingPlan)
		r.DELETE("/:id", co.DeleteSpendingPlan)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Spending Plans
// @Success		204
// @Router			/v1/spending-plans [options]
func (co Controller) OptionsSpendingPlanList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Spending Plans
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/spending-plans/{id} [options]
func (co Controller) OptionsSpendingPlanDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	_, err = co.services.SpendingPlans.Get(c.Request.Context(), uri.ID.UUID)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Create spending plans
// @Description	Creates new spending plans. Plans count towards the predicted spending unless isApply is false.
// @Tags			Spending Plans
// @Produce		json
// @Success		201				{object}	SpendingPlanCreateResponse
// @Failure		400				{object}	SpendingPlanCreateResponse
// @Failure		404				{object}	SpendingPlanCreateResponse
// @Failure		500				{object}	SpendingPlanCreateResponse
// @Param			spendingPlans	body		[]SpendingPlanEditable	true	"Spending plans"
// @Router			/v1/spending-plans [post]
func (co Controller) CreateSpendingPlans(c *gin.Context) {
	var editables []SpendingPlanEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SpendingPlanCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := SpendingPlanCreateResponse{}

	for _, editable := range editables {
		var result service.Result
		plan, err := co.services.SpendingPlans.Add(c.Request.Context(), editable.input(uuid.Nil), &result)
		if err != nil {
			status = r.appendError(err, message(err, result), status)
			continue
		}

		data := co.newSpendingPlan(c, engine.SpendingPlanView{SpendingPlan: plan})
		r.Data = append(r.Data, SpendingPlanResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get spending plans
// @Description	Returns the spending plans of the selected type together with the actual spending and the totals
// @Tags			Spending Plans
// @Produce		json
// @Success		200	{object}	SpendingPlanOverviewResponse
// @Failure		400	{object}	SpendingPlanOverviewResponse
// @Failure		500	{object}	SpendingPlanOverviewResponse
// @Router			/v1/spending-plans [get]
// @Param			type		query	string	false	"Type tab: ALL, LIVING_EXPENSE or CONSUMPTION_PLAN"
// @Param			title		query	string	false	"Filter by title, supports * as wildcard"
// @Param			selected	query	string	false	"ID of the selected spending plan"
func (co Controller) GetSpendingPlans(c *gin.Context) {
	var filter SpendingPlanQueryFilter
	err := c.ShouldBindQuery(&filter)
	if err != nil {
		s := httputil.ErrInvalidQueryString.Error()
		c.JSON(status(err), SpendingPlanOverviewResponse{
			Error: &s,
		})
		return
	}

	overview, err := co.services.SpendingPlans.List(c.Request.Context(), filter.Type)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SpendingPlanOverviewResponse{
			Error: &s,
		})
		return
	}

	data := co.newSpendingPlanOverview(c, overview, filter)
	c.JSON(http.StatusOK, SpendingPlanOverviewResponse{Data: &data})
}

// @Summary		Stream spending plans
// @Description	Sends the spending plan overview as server-sent event "spending-plans" now and every time plans or consumptions change
// @Tags			Spending Plans
// @Produce		text/event-stream
// @Success		200	{object}	SpendingPlanOverview
// @Failure		400	{object}	httpError
// @Failure		500	{object}	httpError
// @Router			/v1/spending-plans/stream [get]
// @Param			type		query	string	false	"Type tab: ALL, LIVING_EXPENSE or CONSUMPTION_PLAN"
// @Param			title		query	string	false	"Filter by title, supports * as wildcard"
// @Param			selected	query	string	false	"ID of the selected spending plan"
func (co Controller) StreamSpendingPlans(c *gin.Context) {
	var filter SpendingPlanQueryFilter
	err := c.ShouldBindQuery(&filter)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: httputil.ErrInvalidQueryString.Error(),
		})
		return
	}

	overviews, err := co.services.SpendingPlans.ListFlow(c.Request.Context(), filter.Type)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	stream(c, "spending-plans", overviews, func(overview engine.SpendingPlanOverview) any {
		return co.newSpendingPlanOverview(c, overview, filter)
	})
}

// @Summary		Get spending plan
// @Description	Returns a specific spending plan
// @Tags			Spending Plans
// @Produce		json
// @Success		200	{object}	SpendingPlanResponse
// @Failure		400	{object}	SpendingPlanResponse
// @Failure		404	{object}	SpendingPlanResponse
// @Failure		500	{object}	SpendingPlanResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/spending-plans/{id} [get]
func (co Controller) GetSpendingPlan(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SpendingPlanResponse{
			Error: &s,
		})
		return
	}

	plan, err := co.services.SpendingPlans.Get(c.Request.Context(), uri.ID.UUID)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SpendingPlanResponse{
			Error: &s,
		})
		return
	}

	data := co.newSpendingPlan(c, engine.SpendingPlanView{SpendingPlan: plan})
	c.JSON(http.StatusOK, SpendingPlanResponse{Data: &data})
}

// @Summary		Update spending plan
// @Description	Update an existing spending plan. Only values to be updated need to be specified.
// @Tags			Spending Plans
// @Accept			json
// @Produce		json
// @Success		200				{object}	SpendingPlanResponse
// @Failure		400				{object}	SpendingPlanResponse
// @Failure		404				{object}	SpendingPlanResponse
// @Failure		500				{object}	SpendingPlanResponse
// @Param			id				path		URIID					true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			spendingPlan	body		SpendingPlanEditable	true	"Spending plan"
// @Router			/v1/spending-plans/{id} [patch]
func (co Controller) UpdateSpendingPlan(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SpendingPlanResponse{
			Error: &s,
		})
		return
	}

	plan, err := co.services.SpendingPlans.Get(c.Request.Context(), uri.ID.UUID)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SpendingPlanResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, SpendingPlanEditable{})
	if err == nil && len(updateFields) == 0 {
		err = errNoUpdateFields
	}
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SpendingPlanResponse{
			Error: &s,
		})
		return
	}

	// Fields not in the body keep their current value
	data := spendingPlanEditable(plan)
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SpendingPlanResponse{
			Error: &s,
		})
		return
	}

	var result service.Result
	plan, err = co.services.SpendingPlans.Add(c.Request.Context(), data.input(plan.ID), &result)
	if err != nil {
		s := message(err, result)
		c.JSON(status(err), SpendingPlanResponse{
			Error: &s,
		})
		return
	}

	r := co.newSpendingPlan(c, engine.SpendingPlanView{SpendingPlan: plan})
	c.JSON(http.StatusOK, SpendingPlanResponse{Data: &r})
}

// @Summary		Delete spending plan
// @Description	Deletes a spending plan and all consumptions recorded for it
// @Tags			Spending Plans
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/spending-plans/{id} [delete]
func (co Controller) DeleteSpendingPlan(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var result service.Result
	err = co.services.SpendingPlans.Delete(c.Request.Context(), uri.ID.UUID, &result)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: message(err, result),
		})
		return
	}

	c.Status(http.StatusNoContent)
}
