package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/moneymate/backend/internal/engine"
	"github.com/moneymate/backend/internal/httputil"
	"github.com/moneymate/backend/internal/service"
)

// RegisterIncomeRoutes registers the routes for incomes with
// the RouterGroup that is passed.
func (co Controller) RegisterIncomeRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", co.OptionsIncomeList)
		r.GET("", co.GetIncomes)
		r.POST("", co.CreateIncomes)
		r.GET("/stream", co.StreamIncomes)
	}

	// Income with ID
	{
		r.OPTIONS("/:id", co.OptionsIncomeDetail)
		r.GET("/:id", co.GetIncome)
		r.PATCH("/:id", co.UpdateIncome)
		r.DELETE("/:id", co.DeleteIncome)
		r.OPTIONS("/:id/executed", co.OptionsIncomeExecuted)
		r.PUT("/:id/executed", co.SetIncomeExecuted)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Incomes
// @Success		204
// @Router			/v1/incomes [options]
func (co Controller) OptionsIncomeList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Incomes
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/incomes/{id} [options]
func (co Controller) OptionsIncomeDetail(c *gin.Context) {
	if _, ok := co.incomeFromURI(c); !ok {
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Incomes
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/incomes/{id}/executed [options]
func (co Controller) OptionsIncomeExecuted(c *gin.Context) {
	if _, ok := co.incomeFromURI(c); !ok {
		return
	}

	httputil.OptionsPut(c)
}

// incomeFromURI returns the ID of the income in the URI after verifying
// that the income exists. If it does not, the error response is written.
func (co Controller) incomeFromURI(c *gin.Context) (uuid.UUID, bool) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return uuid.Nil, false
	}

	_, err = co.services.Incomes.Get(c.Request.Context(), uri.ID.UUID)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return uuid.Nil, false
	}

	return uri.ID.UUID, true
}

// @Summary		Create incomes
// @Description	Creates new incomes. New incomes have not been received yet.
// @Tags			Incomes
// @Produce		json
// @Success		201			{object}	IncomeCreateResponse
// @Failure		400			{object}	IncomeCreateResponse
// @Failure		404			{object}	IncomeCreateResponse
// @Failure		500			{object}	IncomeCreateResponse
// @Param			incomes	body		[]IncomeEditable	true	"Incomes"
// @Router			/v1/incomes [post]
func (co Controller) CreateIncomes(c *gin.Context) {
	var editables []IncomeEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), IncomeCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := IncomeCreateResponse{}

	for _, editable := range editables {
		var result service.Result
		income, err := co.services.Incomes.Add(c.Request.Context(), editable.input(uuid.Nil), &result)
		if err != nil {
			status = r.appendError(err, message(err, result), status)
			continue
		}

		data := co.newIncome(c, income)
		r.Data = append(r.Data, IncomeResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get incomes
// @Description	Returns the incomes together with their totals
// @Tags			Incomes
// @Produce		json
// @Success		200	{object}	IncomeListResponse
// @Failure		400	{object}	IncomeListResponse
// @Failure		500	{object}	IncomeListResponse
// @Router			/v1/incomes [get]
// @Param			title		query	string	false	"Filter by title, supports * as wildcard"
// @Param			type		query	string	false	"Filter by type"
func (co Controller) GetIncomes(c *gin.Context) {
	var filter IncomeQueryFilter
	err := c.ShouldBindQuery(&filter)
	if err != nil {
		s := httputil.ErrInvalidQueryString.Error()
		c.JSON(status(err), IncomeListResponse{
			Error: &s,
		})
		return
	}

	list, err := co.services.Incomes.List(c.Request.Context())
	if err != nil {
		s := err.Error()
		c.JSON(status(err), IncomeListResponse{
			Error: &s,
		})
		return
	}

	data := co.newIncomeList(c, list, filter)
	c.JSON(http.StatusOK, IncomeListResponse{Data: &data})
}

// @Summary		Stream incomes
// @Description	Sends the income list as server-sent event "incomes" now and every time the incomes change
// @Tags			Incomes
// @Produce		text/event-stream
// @Success		200	{object}	IncomeList
// @Failure		400	{object}	httpError
// @Failure		500	{object}	httpError
// @Router			/v1/incomes/stream [get]
// @Param			title		query	string	false	"Filter by title, supports * as wildcard"
// @Param			type		query	string	false	"Filter by type"
func (co Controller) StreamIncomes(c *gin.Context) {
	var filter IncomeQueryFilter
	err := c.ShouldBindQuery(&filter)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: httputil.ErrInvalidQueryString.Error(),
		})
		return
	}

	lists, err := co.services.Incomes.ListFlow(c.Request.Context())
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	stream(c, "incomes", lists, func(list engine.IncomeList) any {
		return co.newIncomeList(c, list, filter)
	})
}

// @Summary		Get income
// @Description	Returns a specific income
// @Tags			Incomes
// @Produce		json
// @Success		200	{object}	IncomeResponse
// @Failure		400	{object}	IncomeResponse
// @Failure		404	{object}	IncomeResponse
// @Failure		500	{object}	IncomeResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/incomes/{id} [get]
func (co Controller) GetIncome(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), IncomeResponse{
			Error: &s,
		})
		return
	}

	income, err := co.services.Incomes.Get(c.Request.Context(), uri.ID.UUID)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), IncomeResponse{
			Error: &s,
		})
		return
	}

	data := co.newIncome(c, income)
	c.JSON(http.StatusOK, IncomeResponse{Data: &data})
}

// @Summary		Update income
// @Description	Update an existing income. Only values to be updated need to be specified. Whether the income has been received is kept.
// @Tags			Incomes
// @Accept			json
// @Produce		json
// @Success		200			{object}	IncomeResponse
// @Failure		400			{object}	IncomeResponse
// @Failure		404			{object}	IncomeResponse
// @Failure		500			{object}	IncomeResponse
// @Param			id			path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			income	body		IncomeEditable	true	"Income"
// @Router			/v1/incomes/{id} [patch]
func (co Controller) UpdateIncome(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), IncomeResponse{
			Error: &s,
		})
		return
	}

	income, err := co.services.Incomes.Get(c.Request.Context(), uri.ID.UUID)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), IncomeResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, IncomeEditable{})
	if err == nil && len(updateFields) == 0 {
		err = errNoUpdateFields
	}
	if err != nil {
		s := err.Error()
		c.JSON(status(err), IncomeResponse{
			Error: &s,
		})
		return
	}

	// Fields not in the body keep their current value
	data := incomeEditable(income)
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), IncomeResponse{
			Error: &s,
		})
		return
	}

	var result service.Result
	income, err = co.services.Incomes.Add(c.Request.Context(), data.input(income.ID), &result)
	if err != nil {
		s := message(err, result)
		c.JSON(status(err), IncomeResponse{
			Error: &s,
		})
		return
	}

	r := co.newIncome(c, income)
	c.JSON(http.StatusOK, IncomeResponse{Data: &r})
}

// @Summary		Set received state
// @Description	Sets whether the income has been received
// @Tags			Incomes
// @Accept			json
// @Produce		json
// @Success		200			{object}	IncomeResponse
// @Failure		400			{object}	IncomeResponse
// @Failure		404			{object}	IncomeResponse
// @Failure		500			{object}	IncomeResponse
// @Param			id			path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			executed	body		ExecutedEditable	true	"Received state"
// @Router			/v1/incomes/{id}/executed [put]
func (co Controller) SetIncomeExecuted(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), IncomeResponse{
			Error: &s,
		})
		return
	}

	var data ExecutedEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), IncomeResponse{
			Error: &s,
		})
		return
	}

	var result service.Result
	income, err := co.services.Incomes.SetExecuted(c.Request.Context(), uri.ID.UUID, *data.Executed, &result)
	if err != nil {
		s := message(err, result)
		c.JSON(status(err), IncomeResponse{
			Error: &s,
		})
		return
	}

	r := co.newIncome(c, income)
	c.JSON(http.StatusOK, IncomeResponse{Data: &r})
}

// @Summary		Delete income
// @Description	Deletes a income
// @Tags			Incomes
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/incomes/{id} [delete]
func (co Controller) DeleteIncome(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var result service.Result
	err = co.services.Incomes.Delete(c.Request.Context(), uri.ID.UUID, &result)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: message(err, result),
		})
		return
	}

	c.Status(http.StatusNoContent)
}
