package handlers

import (
	"faultline/pkg/errx"
)

const (
	codePayment = "81000"
	descPayment = "Payment error"
)

func paymentError(message string) *errx.Error {
	return errx.New(codePayment, descPayment, message).WithContext("order", "A-17")
}
