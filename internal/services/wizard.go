package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Ananth-NQI/storebot-backend/internal/metrics"
	"github.com/Ananth-NQI/storebot-backend/internal/models"
	"github.com/Ananth-NQI/storebot-backend/internal/storage"
	"github.com/Ananth-NQI/storebot-backend/pkg/e"
)

// wizardInput is the kind of message that can advance a wizard session
type wizardInput int

const (
	inputText wizardInput = iota
	inputPhoto
)

// wizardOutcome is what a (step, input) pair does
type wizardOutcome int

const (
	outcomeIgnore wizardOutcome = iota
	outcomeStoreName
	outcomeStoreDescription
	outcomeCommit
)

type transitionKey struct {
	step  models.WizardStep
	input wizardInput
}

// wizardTransitions lists every pair that does something. Any pair that is
// not listed, including unknown steps, resolves to outcomeIgnore.
var wizardTransitions = map[transitionKey]wizardOutcome{
	{models.StepName, inputText}:         outcomeStoreName,
	{models.StepDescription, inputText}:  outcomeStoreDescription,
	{models.StepPhoto, inputPhoto}:       outcomeCommit,
	{models.StepName, inputPhoto}:        outcomeIgnore,
	{models.StepDescription, inputPhoto}: outcomeIgnore,
	{models.StepPhoto, inputText}:        outcomeIgnore,
}

func transition(step models.WizardStep, input wizardInput) wizardOutcome {
	return wizardTransitions[transitionKey{step, input}]
}

// AdminWizard drives catalog management for the administrator
type AdminWizard struct {
	adminID   int64
	sessions  SessionRegistry
	catalog   storage.CatalogStore
	messenger Messenger
	log       *zap.SugaredLogger
}

// NewAdminWizard creates the wizard for the given administrator id
func NewAdminWizard(adminID int64, sessions SessionRegistry, catalog storage.CatalogStore, messenger Messenger, log *zap.SugaredLogger) *AdminWizard {
	return &AdminWizard{
		adminID:   adminID,
		sessions:  sessions,
		catalog:   catalog,
		messenger: messenger,
		log:       log,
	}
}

func (w *AdminWizard) isAdmin(s models.Sender) bool {
	return s.UserID == w.adminID
}

// HandleCommand processes /add, /edit and /delete. Other commands and
// non-admin senders are ignored.
func (w *AdminWizard) HandleCommand(ctx context.Context, ev models.CommandEvent) error {
	if !w.isAdmin(ev.Sender) {
		return nil
	}

	switch ev.Name {
	case "add":
		if err := w.sessions.Set(ctx, ev.UserID, models.NewAddSession()); err != nil {
			return fmt.Errorf("start add session: %w", err)
		}
		return w.messenger.SendText(ctx, ev.ChatID, msgAskName)

	case "edit":
		return w.sendProductPicker(ctx, ev.ChatID, msgPickToEdit, callbackEdit)

	case "delete":
		return w.sendProductPicker(ctx, ev.ChatID, msgPickToDelete, callbackDelete)
	}

	return nil
}

func (w *AdminWizard) sendProductPicker(ctx context.Context, chatID int64, text, prefix string) error {
	products, err := w.catalog.ListProducts(ctx)
	if err != nil {
		return fmt.Errorf("list products: %w", err)
	}
	if len(products) == 0 {
		return w.messenger.SendText(ctx, chatID, msgNoProducts)
	}
	return w.messenger.SendKeyboard(ctx, chatID, text, productKeyboard(products, prefix))
}

// HandleCallback processes edit_<id> and del_<id> button presses. The
// callback is acknowledged whatever happens.
func (w *AdminWizard) HandleCallback(ctx context.Context, ev models.CallbackEvent) error {
	err := w.handleCallback(ctx, ev)

	if ackErr := w.messenger.AnswerCallback(ctx, ev.QueryID); ackErr != nil {
		w.log.Warnf("Failed to answer callback %s: %v", ev.QueryID, ackErr)
	}
	return err
}

func (w *AdminWizard) handleCallback(ctx context.Context, ev models.CallbackEvent) error {
	if !w.isAdmin(ev.Sender) {
		return nil
	}

	switch {
	case strings.HasPrefix(ev.Data, callbackEdit):
		id := strings.TrimPrefix(ev.Data, callbackEdit)
		if id == "" {
			return nil
		}
		if err := w.sessions.Set(ctx, ev.UserID, models.NewEditSession(id)); err != nil {
			return fmt.Errorf("start edit session: %w", err)
		}
		return w.messenger.SendText(ctx, ev.ChatID, msgAskNewName)

	case strings.HasPrefix(ev.Data, callbackDelete):
		id := strings.TrimPrefix(ev.Data, callbackDelete)
		if id == "" {
			return nil
		}
		if err := w.catalog.DeleteProduct(ctx, id); err != nil {
			return fmt.Errorf("delete product %s: %w", id, err)
		}
		w.log.Infof("🗑 Product %s deleted", id)
		return w.messenger.SendText(ctx, ev.ChatID, msgProductDeleted)
	}

	return nil
}

// HandleText advances the name and description steps
func (w *AdminWizard) HandleText(ctx context.Context, ev models.TextEvent) error {
	if !w.isAdmin(ev.Sender) {
		return nil
	}

	session, ok, err := w.sessions.Get(ctx, ev.UserID)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	if !ok {
		return nil
	}

	var prompt string
	switch transition(session.Step, inputText) {
	case outcomeStoreName:
		session.Name = ev.Text
		session.Step = models.StepDescription
		prompt = msgAskDescription
	case outcomeStoreDescription:
		session.Description = ev.Text
		session.Step = models.StepPhoto
		prompt = msgAskPhoto
	default:
		return nil
	}

	if err := w.sessions.Set(ctx, ev.UserID, session); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return w.messenger.SendText(ctx, ev.ChatID, prompt)
}

// HandlePhoto finishes the run: the product is created or updated with the
// largest photo variant and the session is cleared, even on failure.
func (w *AdminWizard) HandlePhoto(ctx context.Context, ev models.PhotoEvent) error {
	if !w.isAdmin(ev.Sender) {
		return nil
	}

	session, ok, err := w.sessions.Get(ctx, ev.UserID)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	if !ok || transition(session.Step, inputPhoto) != outcomeCommit {
		return nil
	}

	defer func() {
		if err := w.sessions.Clear(ctx, ev.UserID); err != nil {
			w.log.Errorf("Failed to clear wizard session for %d: %v", ev.UserID, err)
		}
	}()

	photo, ok := ev.Largest()
	if !ok {
		return nil
	}

	product, header, err := w.commit(ctx, session, photo.FileID)
	result := metrics.ResultOK
	if err != nil {
		result = metrics.ResultError
	}
	metrics.WizardCommitsTotal.WithLabelValues(string(session.Action), result).Inc()
	if errors.Is(err, e.ErrProductNotFound) {
		// deleted while the edit was in progress
		return w.messenger.SendText(ctx, ev.ChatID, msgProductUnavailable)
	}
	if err != nil {
		return err
	}

	w.log.Infof("✅ Product %s saved (%s)", product.ID, session.Action)
	return w.messenger.SendPhoto(ctx, ev.ChatID, productCaption(header, product), product.ImageID)
}

func (w *AdminWizard) commit(ctx context.Context, session models.WizardSession, imageID string) (*models.Product, string, error) {
	product := &models.Product{
		ID:          session.ProductID,
		Name:        session.Name,
		Description: session.Description,
		ImageID:     imageID,
	}

	switch session.Action {
	case models.WizardAdd:
		product.ID = ""
		created, err := w.catalog.CreateProduct(ctx, product)
		if err != nil {
			return nil, "", fmt.Errorf("create product: %w", err)
		}
		return created, msgProductAdded, nil

	case models.WizardEdit:
		if err := w.catalog.UpdateProduct(ctx, product); err != nil {
			return nil, "", fmt.Errorf("update product %s: %w", product.ID, err)
		}
		return product, msgProductEdited, nil
	}

	return nil, "", fmt.Errorf("unknown wizard action %q", session.Action)
}
