package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"cyberdesk-backend/models"
	"cyberdesk-backend/services"
	"cyberdesk-backend/utils"

	"github.com/gin-gonic/gin"
)

const emptyBillRows = 5

// itemRow keeps the raw form values so a rejected form can be shown again.
type itemRow struct {
	Name  string
	Qty   string
	Price string
}

type BillingController struct {
	customers *services.CustomerService
	bills     *services.BillService
}

func NewBillingController(customers *services.CustomerService, bills *services.BillService) *BillingController {
	return &BillingController{customers: customers, bills: bills}
}

// New shows an empty billing form for the customer.
func (bc *BillingController) New(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	customer, err := bc.customers.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "Customer")
		return
	}

	bc.renderForm(c, http.StatusOK, customer, make([]itemRow, emptyBillRows), "", "")
}

// Create assembles the bill from the submitted rows and opens its print view.
func (bc *BillingController) Create(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	customer, err := bc.customers.Get(ctx, id)
	if err != nil {
		respondServiceError(c, err, "Customer")
		return
	}

	names := c.PostFormArray("item_name")
	qtys := c.PostFormArray("item_qty")
	prices := c.PostFormArray("item_price")
	rawDiscount := c.PostForm("discount")
	rows := formRows(names, qtys, prices)

	items, err := parseLineItems(names, qtys, prices)
	if err != nil {
		bc.renderForm(c, http.StatusBadRequest, customer, rows, rawDiscount, err.Error())
		return
	}
	discount, err := utils.ParseFormInt("discount", rawDiscount)
	if err != nil {
		bc.renderForm(c, http.StatusBadRequest, customer, rows, rawDiscount, err.Error())
		return
	}

	bill, err := bc.bills.Assemble(ctx, id, items, discount)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			bc.renderForm(c, http.StatusBadRequest, customer, rows, rawDiscount, validationMessage(err))
			return
		}
		respondServiceError(c, err, "Customer")
		return
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/bills/%d", bill.ID))
}

// Print shows a stored bill with its customer.
func (bc *BillingController) Print(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	bill, customer, err := bc.bills.GetWithCustomer(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "Bill")
		return
	}

	render(c, http.StatusOK, "bill_print.html", gin.H{
		"title":    fmt.Sprintf("Invoice #%d", bill.InvoiceNumber),
		"bill":     bill,
		"customer": customer,
	})
}

func (bc *BillingController) renderForm(c *gin.Context, status int, customer *models.Customer, rows []itemRow, discount, errMsg string) {
	next, err := bc.bills.NextInvoiceNumber(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Invoice")
		return
	}
	if len(rows) == 0 {
		rows = make([]itemRow, 1)
	}

	render(c, status, "billing.html", gin.H{
		"title":       "Billing",
		"customer":    customer,
		"nextInvoice": next,
		"rows":        rows,
		"discount":    discount,
		"error":       errMsg,
	})
}

// parseLineItems pairs the repeated item fields row by row. Blank quantity
// or price count as zero.
func parseLineItems(names, qtys, prices []string) ([]services.LineItem, error) {
	if len(names) != len(qtys) || len(names) != len(prices) {
		return nil, errors.New("item rows are incomplete, each row needs a name, quantity and price")
	}

	items := make([]services.LineItem, 0, len(names))
	for i, name := range names {
		qty, err := utils.ParseFormInt(fmt.Sprintf("quantity in row %d", i+1), qtys[i])
		if err != nil {
			return nil, err
		}
		price, err := utils.ParseFormInt(fmt.Sprintf("price in row %d", i+1), prices[i])
		if err != nil {
			return nil, err
		}
		items = append(items, services.LineItem{
			Label:     strings.TrimSpace(name),
			Quantity:  qty,
			UnitPrice: price,
		})
	}
	return items, nil
}

func formRows(names, qtys, prices []string) []itemRow {
	n := max(len(names), len(qtys), len(prices))
	rows := make([]itemRow, n)
	for i := range rows {
		if i < len(names) {
			rows[i].Name = names[i]
		}
		if i < len(qtys) {
			rows[i].Qty = qtys[i]
		}
		if i < len(prices) {
			rows[i].Price = prices[i]
		}
	}
	return rows
}
