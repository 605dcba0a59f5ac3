package dto

import "github.com/aq2208/gorder-workflow/internal/usecase"

type PlaceOrderErrorDto struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func FromError(err usecase.PlaceOrderError) PlaceOrderErrorDto {
	return PlaceOrderErrorDto{Code: usecase.ErrorCode(err), Message: err.Error()}
}
