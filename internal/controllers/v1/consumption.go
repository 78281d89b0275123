package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/moneymate/backend/internal/httputil"
	"github.com/moneymate/backend/internal/service"
)

// RegisterConsumptionRoutes registers the routes for consumptions with
// the RouterGroup that is passed.
func (co Controller) RegisterConsumptionRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", co.OptionsConsumptionList)
		r.GET("", co.GetConsumptions)
		r.POST("", co.CreateConsumptions)
	}

	// Consumption with ID
	{
		r.OPTIONS("/:id", co.OptionsConsumptionDetail)
		r.GET("/:id", co.GetConsumption)
		r.DELETE("/:id", co.DeleteConsumption)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Consumptions
// @Success		204
// @Router			/v1/consumptions [options]
func (co Controller) OptionsConsumptionList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Consumptions
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/consumptions/{id} [options]
func (co Controller) OptionsConsumptionDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	_, err = co.services.Consumptions.Get(c.Request.Context(), uri.ID.UUID)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetDelete(c)
}

// @Summary		Create consumptions
// @Description	Records money spent against spending plans
// @Tags			Consumptions
// @Produce		json
// @Success		201				{object}	ConsumptionCreateResponse
// @Failure		400				{object}	ConsumptionCreateResponse
// @Failure		404				{object}	ConsumptionCreateResponse
// @Failure		500				{object}	ConsumptionCreateResponse
// @Param			consumptions	body		[]ConsumptionEditable	true	"Consumptions"
// @Router			/v1/consumptions [post]
func (co Controller) CreateConsumptions(c *gin.Context) {
	var editables []ConsumptionEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ConsumptionCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := ConsumptionCreateResponse{}

	for _, editable := range editables {
		var result service.Result
		consumption, err := co.services.Consumptions.Add(c.Request.Context(), editable.input(), &result)
		if err != nil {
			status = r.appendError(err, message(err, result), status)
			continue
		}

		data := co.newConsumption(c, consumption)
		r.Data = append(r.Data, ConsumptionResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get consumptions
// @Description	Returns a list of consumptions
// @Tags			Consumptions
// @Produce		json
// @Success		200	{object}	ConsumptionListResponse
// @Failure		400	{object}	ConsumptionListResponse
// @Failure		500	{object}	ConsumptionListResponse
// @Router			/v1/consumptions [get]
// @Param			spendingPlan	query	string	false	"Filter by spending plan ID"
// @Param			title			query	string	false	"Filter by title, supports * as wildcard"
func (co Controller) GetConsumptions(c *gin.Context) {
	var filter ConsumptionQueryFilter
	err := c.ShouldBindQuery(&filter)
	if err != nil {
		s := httputil.ErrInvalidQueryString.Error()
		c.JSON(status(err), ConsumptionListResponse{
			Error: &s,
		})
		return
	}

	consumptions, err := co.services.Consumptions.List(c.Request.Context(), filter.SpendingPlanID.UUID)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ConsumptionListResponse{
			Error: &s,
		})
		return
	}

	data := make([]Consumption, 0, len(consumptions))
	for _, consumption := range consumptions {
		if titleMatches(filter.Title, consumption.Title) {
			data = append(data, co.newConsumption(c, consumption))
		}
	}

	c.JSON(http.StatusOK, ConsumptionListResponse{Data: data})
}

// @Summary		Get consumption
// @Description	Returns a specific consumption
// @Tags			Consumptions
// @Produce		json
// @Success		200	{object}	ConsumptionResponse
// @Failure		400	{object}	ConsumptionResponse
// @Failure		404	{object}	ConsumptionResponse
// @Failure		500	{object}	ConsumptionResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/consumptions/{id} [get]
func (co Controller) GetConsumption(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ConsumptionResponse{
			Error: &s,
		})
		return
	}

	consumption, err := co.services.Consumptions.Get(c.Request.Context(), uri.ID.UUID)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ConsumptionResponse{
			Error: &s,
		})
		return
	}

	data := co.newConsumption(c, consumption)
	c.JSON(http.StatusOK, ConsumptionResponse{Data: &data})
}

// @Summary		Delete consumption
// @Description	Deletes a consumption
// @Tags			Consumptions
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/consumptions/{id} [delete]
func (co Controller) DeleteConsumption(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var result service.Result
	err = co.services.Consumptions.Delete(c.Request.Context(), uri.ID.UUID, &result)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: message(err, result),
		})
		return
	}

	c.Status(http.StatusNoContent)
}
