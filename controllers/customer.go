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

// CustomerForm is the add/edit customer form.
type CustomerForm struct {
	Name  string `form:"name" binding:"required,max=100"`
	Phone string `form:"phone" binding:"omitempty,max=20"`
	Email string `form:"email" binding:"omitempty,email,max=100"`
	Place string `form:"place" binding:"omitempty,max=100"`
}

func customerFormFrom(c *models.Customer) CustomerForm {
	return CustomerForm{Name: c.Name, Phone: c.Phone, Email: c.Email, Place: c.Place}
}

// validate covers the rules binding tags cannot express.
func (f CustomerForm) validate() string {
	if phone := strings.TrimSpace(f.Phone); phone != "" && !utils.ValidatePhone(phone) {
		return "Invalid phone number format"
	}
	return ""
}

func (f CustomerForm) input() services.CustomerInput {
	return services.CustomerInput{Name: f.Name, Phone: f.Phone, Email: f.Email, Place: f.Place}
}

type CustomerController struct {
	customers  *services.CustomerService
	activities *services.ActivityService
	documents  *services.DocumentService
	bills      *services.BillService
}

func NewCustomerController(
	customers *services.CustomerService,
	activities *services.ActivityService,
	documents *services.DocumentService,
	bills *services.BillService,
) *CustomerController {
	return &CustomerController{
		customers:  customers,
		activities: activities,
		documents:  documents,
		bills:      bills,
	}
}

func (cc *CustomerController) New(c *gin.Context) {
	renderCustomerForm(c, http.StatusOK, "Add customer", "/customers", CustomerForm{}, "")
}

func (cc *CustomerController) Create(c *gin.Context) {
	form, msg := bindCustomerForm(c)
	if msg != "" {
		renderCustomerForm(c, http.StatusBadRequest, "Add customer", "/customers", form, msg)
		return
	}

	if _, err := cc.customers.Create(c.Request.Context(), form.input()); err != nil {
		if errors.Is(err, services.ErrValidation) {
			renderCustomerForm(c, http.StatusBadRequest, "Add customer", "/customers", form, validationMessage(err))
			return
		}
		respondServiceError(c, err, "Customer")
		return
	}

	utils.SetFlash(c, "Customer added")
	c.Redirect(http.StatusFound, "/dashboard")
}

func (cc *CustomerController) Edit(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	customer, err := cc.customers.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "Customer")
		return
	}

	renderCustomerForm(c, http.StatusOK, "Edit customer", fmt.Sprintf("/customers/%d", id), customerFormFrom(customer), "")
}

func (cc *CustomerController) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	action := fmt.Sprintf("/customers/%d", id)

	form, msg := bindCustomerForm(c)
	if msg != "" {
		renderCustomerForm(c, http.StatusBadRequest, "Edit customer", action, form, msg)
		return
	}

	if _, err := cc.customers.Update(c.Request.Context(), id, form.input()); err != nil {
		if errors.Is(err, services.ErrValidation) {
			renderCustomerForm(c, http.StatusBadRequest, "Edit customer", action, form, validationMessage(err))
			return
		}
		respondServiceError(c, err, "Customer")
		return
	}

	utils.SetFlash(c, "Customer updated")
	c.Redirect(http.StatusFound, "/dashboard")
}

// Delete removes the customer and everything recorded for them.
func (cc *CustomerController) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := cc.customers.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, "Customer")
		return
	}

	utils.SetFlash(c, "Customer deleted")
	c.Redirect(http.StatusFound, "/dashboard")
}

// Profile shows the customer with history, documents and bills.
func (cc *CustomerController) Profile(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	customer, err := cc.customers.Get(ctx, id)
	if err != nil {
		respondServiceError(c, err, "Customer")
		return
	}
	activities, err := cc.activities.ListByCustomer(ctx, id)
	if err != nil {
		respondServiceError(c, err, "History")
		return
	}
	documents, err := cc.documents.ListByCustomer(ctx, id)
	if err != nil {
		respondServiceError(c, err, "Documents")
		return
	}
	bills, err := cc.bills.ListByCustomer(ctx, id)
	if err != nil {
		respondServiceError(c, err, "Bills")
		return
	}

	render(c, http.StatusOK, "customer_profile.html", gin.H{
		"title":      customer.Name,
		"customer":   customer,
		"activities": activities,
		"documents":  documents,
		"bills":      bills,
	})
}

// AddHistory records an activity note on the profile.
func (cc *CustomerController) AddHistory(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if _, err := cc.activities.Create(c.Request.Context(), id, c.PostForm("description")); err != nil {
		respondServiceError(c, err, "Customer")
		return
	}

	utils.SetFlash(c, "History added")
	c.Redirect(http.StatusFound, fmt.Sprintf("/customers/%d", id))
}

func bindCustomerForm(c *gin.Context) (CustomerForm, string) {
	var form CustomerForm
	if err := c.ShouldBind(&form); err != nil {
		return form, utils.FormatBindingError(err)
	}
	return form, form.validate()
}

func renderCustomerForm(c *gin.Context, status int, title, action string, form CustomerForm, errMsg string) {
	render(c, status, "customer_form.html", gin.H{
		"title":  title,
		"action": action,
		"form":   form,
		"error":  errMsg,
	})
}
