package dto

import (
	"github.com/shopspring/decimal"

	"github.com/anyulbade/retail-sales-dashboard/internal/model"
	"github.com/anyulbade/retail-sales-dashboard/internal/query"
	"github.com/anyulbade/retail-sales-dashboard/internal/service"
)

type TransactionResponse struct {
	TransactionID   string   `json:"transactionId"`
	Date            string   `json:"date"`
	CustomerID      string   `json:"customerId"`
	CustomerName    string   `json:"customerName"`
	PhoneNumber     string   `json:"phoneNumber"`
	Gender          string   `json:"gender"`
	Age             int      `json:"age"`
	CustomerRegion  string   `json:"customerRegion"`
	ProductCategory string   `json:"productCategory"`
	ProductID       string   `json:"productId"`
	Quantity        int      `json:"quantity"`
	TotalAmount     *float64 `json:"totalAmount"`
	FinalAmount     *float64 `json:"finalAmount"`
	Discount        float64  `json:"discount"`
	PaymentMethod   string   `json:"paymentMethod"`
	Tags            []string `json:"tags"`
	EmployeeName    string   `json:"employeeName"`
}

type MetricsResponse struct {
	TotalUnits    int64   `json:"totalUnits"`
	TotalAmount   float64 `json:"totalAmount"`
	TotalDiscount float64 `json:"totalDiscount"`
}

type SalesResponse struct {
	Success      bool                  `json:"success"`
	Data         []TransactionResponse `json:"data"`
	Metrics      MetricsResponse       `json:"metrics"`
	TotalPages   int                   `json:"totalPages"`
	CurrentPage  int                   `json:"currentPage"`
	TotalRecords int                   `json:"totalRecords"`
}

type FacetsResponse struct {
	Success        bool     `json:"success"`
	Regions        []string `json:"regions"`
	Genders        []string `json:"genders"`
	Categories     []string `json:"categories"`
	PaymentMethods []string `json:"paymentMethods"`
	Tags           []string `json:"tags"`
	MinAge         int      `json:"minAge"`
	MaxAge         int      `json:"maxAge"`
	MinDate        string   `json:"minDate,omitempty"`
	MaxDate        string   `json:"maxDate,omitempty"`
}

func NewTransactionResponse(t model.Transaction) TransactionResponse {
	tags := t.Tags
	if tags == nil {
		tags = []string{}
	}
	return TransactionResponse{
		TransactionID:   t.ID,
		Date:            model.CalendarDate(t.Date).Format(query.DateLayout),
		CustomerID:      t.CustomerID,
		CustomerName:    t.CustomerName,
		PhoneNumber:     t.PhoneNumber,
		Gender:          t.Gender,
		Age:             t.Age,
		CustomerRegion:  t.CustomerRegion,
		ProductCategory: t.ProductCategory,
		ProductID:       t.ProductID,
		Quantity:        t.Quantity,
		TotalAmount:     optionalAmount(t.TotalAmount),
		FinalAmount:     optionalAmount(t.FinalAmount),
		Discount:        t.Discount().InexactFloat64(),
		PaymentMethod:   t.PaymentMethod,
		Tags:            tags,
		EmployeeName:    t.EmployeeName,
	}
}

func optionalAmount(d decimal.NullDecimal) *float64 {
	if !d.Valid {
		return nil
	}
	f := d.Decimal.InexactFloat64()
	return &f
}

func NewMetricsResponse(m model.Metrics) MetricsResponse {
	return MetricsResponse{
		TotalUnits:    m.TotalUnits,
		TotalAmount:   m.TotalAmount.Round(2).InexactFloat64(),
		TotalDiscount: m.TotalDiscount.Round(2).InexactFloat64(),
	}
}

func NewSalesResponse(page *service.SalesPage) SalesResponse {
	data := make([]TransactionResponse, 0, len(page.Data))
	for _, t := range page.Data {
		data = append(data, NewTransactionResponse(t))
	}
	return SalesResponse{
		Success:      true,
		Data:         data,
		Metrics:      NewMetricsResponse(page.Metrics),
		TotalPages:   page.TotalPages,
		CurrentPage:  page.CurrentPage,
		TotalRecords: page.TotalRecords,
	}
}

func NewFacetsResponse(f model.Facets) FacetsResponse {
	resp := FacetsResponse{
		Success:        true,
		Regions:        nonNil(f.Regions),
		Genders:        nonNil(f.Genders),
		Categories:     nonNil(f.Categories),
		PaymentMethods: nonNil(f.PaymentMethods),
		Tags:           nonNil(f.Tags),
		MinAge:         f.MinAge,
		MaxAge:         f.MaxAge,
	}
	if f.MinDate != nil {
		resp.MinDate = f.MinDate.Format(query.DateLayout)
	}
	if f.MaxDate != nil {
		resp.MaxDate = f.MaxDate.Format(query.DateLayout)
	}
	return resp
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
