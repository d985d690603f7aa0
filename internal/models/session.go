package models

// WizardAction is what a wizard run does with the catalog on completion
type WizardAction string

const (
	WizardAdd  WizardAction = "add"
	WizardEdit WizardAction = "edit"
)

// WizardStep is the input the wizard waits for next
type WizardStep string

const (
	StepName        WizardStep = "name"
	StepDescription WizardStep = "desc"
	StepPhoto       WizardStep = "photo"
)

// WizardSession stores an in-progress admin add/edit run
type WizardSession struct {
	Action      WizardAction `json:"action"`
	ProductID   string       `json:"product_id,omitempty"` // edit only
	Step        WizardStep   `json:"step"`
	Name        string       `json:"name,omitempty"`
	Description string       `json:"description,omitempty"`
}

// NewAddSession starts an add run at the name step
func NewAddSession() WizardSession {
	return WizardSession{Action: WizardAdd, Step: StepName}
}

// NewEditSession starts an edit run for productID at the name step
func NewEditSession(productID string) WizardSession {
	return WizardSession{Action: WizardEdit, ProductID: productID, Step: StepName}
}
