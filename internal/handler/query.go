package handler

import (
	"math"
	"strconv"
	"strings"

	"property-service/internal/apperror"
	"property-service/internal/model"

	"github.com/labstack/echo/v4"
)

// pageFrom reads page and limit. Missing or malformed values fall back to the defaults.
func pageFrom(c echo.Context) model.Page {
	number, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	return model.NewPage(number, limit)
}

// propertyFilterFrom maps the recognized listing query keys. Other keys are ignored.
func propertyFilterFrom(c echo.Context) (model.PropertyFilter, error) {
	f := model.PropertyFilter{
		Status:          strings.TrimSpace(c.QueryParam("status")),
		PropertyType:    strings.TrimSpace(c.QueryParam("propertyType")),
		TransactionType: strings.TrimSpace(c.QueryParam("transactionType")),
		Area:            strings.TrimSpace(c.QueryParam("area")),
	}

	var err error
	if f.MinPrice, err = priceParam(c, "minPrice"); err != nil {
		return f, err
	}
	if f.MaxPrice, err = priceParam(c, "maxPrice"); err != nil {
		return f, err
	}
	return f, nil
}

func priceParam(c echo.Context, key string) (*float64, error) {
	raw := strings.TrimSpace(c.QueryParam(key))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, apperror.Validationf("%s must be a number", key)
	}
	return &v, nil
}

// inquiryFilterFrom maps status and, for property inquiries, the property id.
func inquiryFilterFrom(c echo.Context) model.InquiryFilter {
	return model.InquiryFilter{
		Status:     strings.TrimSpace(c.QueryParam("status")),
		PropertyID: strings.TrimSpace(c.QueryParam("property")),
	}
}
