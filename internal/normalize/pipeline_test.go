package normalize

import (
	"encoding/json"
	"testing"
)

func decode(t *testing.T, raw string) any {
	t.Helper()
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	return v
}

func TestNormalize_PaidSale(t *testing.T) {
	p := NewPipeline()
	payload := decode(t, `{
		"type": "sale", "event": "saleUpdated",
		"client": {"name": "Ana", "email": "a@x.com"},
		"product": {"name": "Bravy Club"},
		"sale": {"status": "paid", "amount": 150, "seller_balance": "120,00"}
	}`)

	rec, kind, err := p.Normalize(payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if kind != KindSaleUpdate {
		t.Fatalf("expected sale_update, got %s", kind)
	}
	if rec.Name == nil || *rec.Name != "Ana" {
		t.Fatalf("expected name Ana, got %v", rec.Name)
	}
	if rec.Email == nil || *rec.Email != "a@x.com" {
		t.Fatalf("expected email a@x.com, got %v", rec.Email)
	}
	if rec.Phone != nil {
		t.Fatalf("expected nil phone, got %q", *rec.Phone)
	}
	if rec.Product == nil || *rec.Product != "bravy-club" {
		t.Fatalf("expected product bravy-club, got %v", rec.Product)
	}
	if rec.Action == nil || *rec.Action != "comprador" {
		t.Fatalf("expected action comprador, got %v", rec.Action)
	}
	if rec.Tag == nil || *rec.Tag != "comprador-bravy-club" {
		t.Fatalf("expected tag comprador-bravy-club, got %v", rec.Tag)
	}
	if rec.ProductID == nil || *rec.ProductID != *rec.Tag {
		t.Fatalf("expected idproduto to mirror tag, got %v", rec.ProductID)
	}
	if rec.Amount == nil || *rec.Amount != 150 {
		t.Fatalf("expected valor 150, got %v", rec.Amount)
	}
	if rec.SettledAmount == nil || *rec.SettledAmount != 120.0 {
		t.Fatalf("expected liquidado 120.0, got %v", rec.SettledAmount)
	}
}

func TestNormalize_AbandonedCheckout(t *testing.T) {
	p := NewPipeline()
	payload := decode(t, `{
		"type": "lead", "event": "checkoutAbandoned",
		"lead": {"name": "Bia", "email": "b@x.com", "cellphone": 555},
		"product": {"name": "X", "amount": "99,90"}
	}`)

	rec, kind, err := p.Normalize(payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if kind != KindLeadAbandoned {
		t.Fatalf("expected lead_abandoned, got %s", kind)
	}
	if rec.Phone == nil || *rec.Phone != "555" {
		t.Fatalf("expected phone 555, got %v", rec.Phone)
	}
	if rec.Action == nil || *rec.Action != "abandoned" {
		t.Fatalf("expected action abandoned, got %v", rec.Action)
	}
	if rec.Amount == nil || *rec.Amount != 99 {
		t.Fatalf("expected valor 99, got %v", rec.Amount)
	}
	if rec.SettledAmount != nil {
		t.Fatalf("expected nil liquidado, got %v", *rec.SettledAmount)
	}
}

func TestNormalize_AbandonedAmountFallsBackToOffer(t *testing.T) {
	p := NewPipeline()
	payload := decode(t, `{
		"type": "lead", "event": "checkoutAbandoned",
		"lead": {"email": "b@x.com"},
		"product": {"name": "X"},
		"offer": {"amount": 49.9}
	}`)

	rec, _, err := p.Normalize(payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Amount == nil || *rec.Amount != 49 {
		t.Fatalf("expected valor 49, got %v", rec.Amount)
	}
}

func TestNormalize_AbandonedIgnoresStatusFields(t *testing.T) {
	p := NewPipeline()
	payload := decode(t, `{
		"type": "lead", "event": "checkoutAbandoned",
		"lead": {"email": "b@x.com"},
		"currentStatus": "paid"
	}`)

	rec, _, err := p.Normalize(payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Action == nil || *rec.Action != "abandoned" {
		t.Fatalf("expected action abandoned, got %v", rec.Action)
	}
}

func TestNormalize_ContractReadsCurrentSale(t *testing.T) {
	p := NewPipeline()
	payload := decode(t, `{
		"type": "contract", "event": "contractUpdated",
		"client": {"name": "Caio", "email": "c@x.com", "cellphone": "+5511999990000"},
		"product": {"name": "Mentoria Black"},
		"currentSale": {"status": "paid", "amount": "997,00", "seller_balance": 800.5}
	}`)

	rec, kind, err := p.Normalize(payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if kind != KindContractUpdate {
		t.Fatalf("expected contract_update, got %s", kind)
	}
	if rec.Tag == nil || *rec.Tag != "comprador-mentoria-black" {
		t.Fatalf("expected tag comprador-mentoria-black, got %v", rec.Tag)
	}
	if rec.Amount == nil || *rec.Amount != 997 {
		t.Fatalf("expected valor 997, got %v", rec.Amount)
	}
	if rec.SettledAmount == nil || *rec.SettledAmount != 800.5 {
		t.Fatalf("expected liquidado 800.5, got %v", rec.SettledAmount)
	}
}

func TestNormalize_StatusFallbackChain(t *testing.T) {
	p := NewPipeline()
	payload := decode(t, `{
		"type": "sale",
		"client": {"email": "a@x.com"},
		"product": {"name": "Floow PRO"},
		"oldStatus": "refused"
	}`)

	rec, _, err := p.Normalize(payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Action == nil || *rec.Action != "recusado" {
		t.Fatalf("expected action recusado, got %v", rec.Action)
	}
}

func TestNormalize_SettledGatedOnBuyerAction(t *testing.T) {
	p := NewPipeline()
	payload := decode(t, `{
		"type": "sale",
		"client": {"email": "a@x.com"},
		"sale": {"status": "waiting_payment", "amount": 100, "seller_balance": 90}
	}`)

	rec, _, err := p.Normalize(payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Action == nil || *rec.Action != "pixgerado" {
		t.Fatalf("expected action pixgerado, got %v", rec.Action)
	}
	if rec.SettledAmount != nil {
		t.Fatalf("expected nil liquidado for non-buyer action, got %v", *rec.SettledAmount)
	}
}

func TestNormalize_UnmappedFieldsDegradeToNull(t *testing.T) {
	p := NewPipeline()
	payload := decode(t, `{
		"type": "sale",
		"client": {"name": "   "},
		"sale": {"status": "disputed", "amount": "n/a"}
	}`)

	rec, _, err := p.Normalize(payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Name != nil {
		t.Fatalf("expected whitespace name to become null, got %q", *rec.Name)
	}
	if rec.Action != nil || rec.Product != nil || rec.Tag != nil || rec.ProductID != nil || rec.Amount != nil {
		t.Fatalf("expected all-null record fields, got %+v", rec)
	}
}

func TestNormalize_UnwrapsDeliveryEnvelope(t *testing.T) {
	p := NewPipeline()
	payload := decode(t, `[{
		"headers": {"x-request-id": "abc"},
		"body": {
			"type": "sale",
			"client": {"email": "a@x.com"},
			"sale": {"status": "refunded"}
		}
	}]`)

	rec, kind, err := p.Normalize(payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if kind != KindSaleUpdate {
		t.Fatalf("expected sale_update, got %s", kind)
	}
	if rec.Action == nil || *rec.Action != "reembolsado" {
		t.Fatalf("expected action reembolsado, got %v", rec.Action)
	}
}

func TestNormalize_UnwrapsBareBodyObject(t *testing.T) {
	p := NewPipeline()
	payload := decode(t, `{"body": {"type": "contract", "currentSale": {"status": "chargedback"}}}`)

	rec, _, err := p.Normalize(payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Action == nil || *rec.Action != "chargeback" {
		t.Fatalf("expected action chargeback, got %v", rec.Action)
	}
}

func TestNormalize_RejectsNonObjectPayload(t *testing.T) {
	p := NewPipeline()
	if _, _, err := p.Normalize(decode(t, `42`)); err == nil {
		t.Fatalf("expected error for scalar payload")
	}
	if _, _, err := p.Normalize(decode(t, `[1, 2]`)); err == nil {
		t.Fatalf("expected error for array payload")
	}
}

func TestNormalize_UnknownEventIsAnError(t *testing.T) {
	p := NewPipeline()
	_, _, err := p.Normalize(decode(t, `{"type": "invoice"}`))
	if err == nil {
		t.Fatalf("expected error")
	}
	if _, ok := err.(UnsupportedEventError); !ok {
		t.Fatalf("expected UnsupportedEventError, got %T", err)
	}
}
