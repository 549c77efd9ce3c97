package services

import (
	"fmt"
	"log"
	"strings"

	"cyberdesk-backend/models"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// BillNotifier is told about every bill right after it is stored.
type BillNotifier interface {
	NotifyBillCreated(customer *models.Customer, bill *models.Bill) error
}

type NoopNotifier struct{}

func (NoopNotifier) NotifyBillCreated(*models.Customer, *models.Bill) error { return nil }

type messageCreator interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

// SMSNotifier texts the customer a short receipt through Twilio.
type SMSNotifier struct {
	api  messageCreator
	from string
}

func NewSMSNotifier(accountSID, authToken, fromNumber string) *SMSNotifier {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return &SMSNotifier{api: client.Api, from: fromNumber}
}

func (n *SMSNotifier) NotifyBillCreated(customer *models.Customer, bill *models.Bill) error {
	to := strings.TrimSpace(customer.Phone)
	if to == "" {
		return nil
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(n.from)
	params.SetBody(ReceiptMessage(customer, bill))

	resp, err := n.api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("send sms to %s: %w", to, err)
	}
	if resp != nil && resp.Sid != nil {
		log.Printf("[SMS] receipt for invoice %d sent to %s, SID: %s", bill.InvoiceNumber, to, *resp.Sid)
	}
	return nil
}

func ReceiptMessage(customer *models.Customer, bill *models.Bill) string {
	return fmt.Sprintf("Hi %s, invoice #%d: total %d (discount %d). Thank you!",
		customer.Name, bill.InvoiceNumber, bill.Total, bill.Discount)
}
