package validator

import "testing"

type bookingForm struct {
	Date string `validate:"required,dateonly"`
	Slot string `validate:"required,hhmm"`
}

func TestCustomTagsAcceptValidInput(t *testing.T) {
	cv := NewValidator()
	if err := cv.Validate(&bookingForm{Date: "2026-08-31", Slot: "09:30"}); err != nil {
		t.Errorf("valid form rejected: %v", err)
	}
}

func TestCustomTagsRejectInvalidInput(t *testing.T) {
	cv := NewValidator()

	tests := []bookingForm{
		{Date: "31-08-2026", Slot: "09:30"},
		{Date: "2026-08-31", Slot: "9:3"},
		{Date: "2026-08-31", Slot: "25:00"},
		{Date: "", Slot: "09:30"},
	}
	for _, form := range tests {
		if err := cv.Validate(&form); err == nil {
			t.Errorf("form %+v should be rejected", form)
		}
	}
}

func TestFormatValidationErrors(t *testing.T) {
	cv := NewValidator()
	err := cv.Validate(&bookingForm{Date: "bad", Slot: ""})
	if err == nil {
		t.Fatal("expected validation error")
	}

	formatted := cv.FormatValidationErrors(err)
	if formatted["Date"] == "" {
		t.Error("missing message for Date")
	}
	if formatted["Slot"] == "" {
		t.Error("missing message for Slot")
	}
}
