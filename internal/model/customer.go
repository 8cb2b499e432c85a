package model

import "time"

// Customer records a sale to a named customer.
// ProductCodes are free-form references and are not checked against products.
type Customer struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Address      string     `json:"address"`
	MobileNumber string     `json:"mobileNumber"`
	ProductCodes []string   `json:"productCodes"`
	Date         string     `json:"date"`
	Time         string     `json:"time"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    *time.Time `json:"updatedAt,omitempty"`
}

// CustomerRequest is the payload for creating or updating a customer.
type CustomerRequest struct {
	Name         string   `json:"name"`
	Address      string   `json:"address"`
	MobileNumber string   `json:"mobileNumber"`
	ProductCodes []string `json:"productCodes"`
	Date         string   `json:"date"`
	Time         string   `json:"time"`
}
