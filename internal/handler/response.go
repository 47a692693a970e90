package handler

import (
	"net/http"

	"property-service/internal/model"

	"github.com/labstack/echo/v4"
)

type listResponse struct {
	Success bool        `json:"success"`
	Count   int         `json:"count"`
	Total   int64       `json:"total"`
	Page    int         `json:"page"`
	Pages   int64       `json:"pages"`
	Data    interface{} `json:"data"`
}

type dataResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type tokenResponse struct {
	Success bool        `json:"success"`
	Token   string      `json:"token"`
	Data    interface{} `json:"data,omitempty"`
}

func respondList[T any](c echo.Context, items []T, total int64, page model.Page) error {
	if items == nil {
		items = []T{}
	}
	return c.JSON(http.StatusOK, listResponse{
		Success: true,
		Count:   len(items),
		Total:   total,
		Page:    page.Number,
		Pages:   page.Pages(total),
		Data:    items,
	})
}

func respondData(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, dataResponse{Success: true, Data: data})
}

func respondMessage(c echo.Context, message string) error {
	return c.JSON(http.StatusOK, messageResponse{Success: true, Message: message})
}
