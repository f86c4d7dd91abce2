// Copyright 2025 The IntelliShop Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package validator validates form payloads before they are sent to the
// backend.
package validator

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

func init() {
	// Price fields arrive as decimal strings; numeric tags don't apply.
	_ = validate.RegisterValidation("decimal-gte-zero", func(fl validator.FieldLevel) bool {
		d, err := decimal.NewFromString(fl.Field().String())
		return err == nil && !d.IsNegative()
	})
}

type LoginPayload struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

func (p *LoginPayload) Validate() error {
	return validate.Struct(p)
}

type SignupPayload struct {
	Name     string `validate:"required,min=2,max=100"`
	Email    string `validate:"required,email"`
	Phone    string `validate:"required,min=7,max=15"`
	Address  string `validate:"max=500"`
	Password string `validate:"required,min=6"`
	Role     string `validate:"required,oneof=CUSTOMER OWNER"`
}

func (p *SignupPayload) Validate() error {
	return validate.Struct(p)
}

type ProfilePayload struct {
	Name    string `validate:"required,min=2,max=100"`
	Phone   string `validate:"required,min=7,max=15"`
	Address string `validate:"max=500"`
}

func (p *ProfilePayload) Validate() error {
	return validate.Struct(p)
}

type AddToCartPayload struct {
	ProductID int64 `validate:"required,gt=0"`
	Quantity  int   `validate:"required,gte=1,lte=100"`
}

func (p *AddToCartPayload) Validate() error {
	return validate.Struct(p)
}

type PlaceOrderPayload struct {
	DeliveryMode  string `validate:"required,oneof='Home Delivery' 'Store Pickup'"`
	Address       string `validate:"required_if=DeliveryMode 'Home Delivery',max=500"`
	PaymentMethod string `validate:"required,oneof=COD UPI Card"`
}

func (p *PlaceOrderPayload) Validate() error {
	return validate.Struct(p)
}

type ProductPayload struct {
	Name              string `validate:"required,min=2,max=200"`
	Description       string `validate:"max=2000"`
	Price             string `validate:"required,decimal-gte-zero"`
	Stock             int    `validate:"gte=0"`
	LowStockThreshold int    `validate:"gte=0"`
}

func (p *ProductPayload) Validate() error {
	return validate.Struct(p)
}

type ShopPayload struct {
	Name        string `validate:"required,min=2,max=200"`
	Address     string `validate:"required,max=500"`
	ShopType    string `validate:"required,max=100"`
	Description string `validate:"max=2000"`
}

func (p *ShopPayload) Validate() error {
	return validate.Struct(p)
}

type ContactPayload struct {
	Name    string `validate:"required,min=2,max=100"`
	Title   string `validate:"required,max=200"`
	Email   string `validate:"required,email"`
	Message string `validate:"required,max=5000"`
}

func (p *ContactPayload) Validate() error {
	return validate.Struct(p)
}

// ValidationErrorResponse flattens go-playground field errors into one
// message suitable for rendering back to the visitor.
func ValidationErrorResponse(err error) error {
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	parts := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		parts = append(parts, fmt.Sprintf("field %q failed on %q", fe.Field(), fe.Tag()))
	}
	return fmt.Errorf("invalid payload: %s", strings.Join(parts, "; "))
}
