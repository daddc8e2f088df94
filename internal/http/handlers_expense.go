package http

import (
	"net/http"

	applog "expensetracker/internal/log"
)

const (
	msgExpenseAdded   = "Expense added successfully!"
	msgExpenseDeleted = "Expense deleted successfully!"
)

// handleCreateExpense adds an expense from a form or JSON body. An incomplete
// submission is ignored: 204 without triggers, so the dialog stays open with
// its values.
func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}
	p, errResp := ParseBodyOrFail(r)
	if errResp != nil {
		applog.FromContext(r.Context()).WarnContext(r.Context(), "Unreadable expense body",
			applog.FieldOperation, applog.OpCreate)
		errResp.Write(w)
		return
	}

	ev, ok := s.svc.CreateExpense(r.Context(), ParseDraft(p))
	if !ok {
		NewHTMXResponse().Status(http.StatusNoContent).Write(w)
		return
	}

	NewHTMXResponse().
		Header("X-Expense-ID", ev.Expense.ID).
		TriggerFormReset().
		TriggerDialogClose().
		TriggerExpensesChanged(ev.Version).
		TriggerSuccessNotification(msgExpenseAdded).
		Write(w)
}

// handleDeleteExpense removes an expense by id. Unknown ids still get the
// success notice.
func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	if resp := RequireDeleteOrPOST(r); resp != nil {
		resp.Write(w)
		return
	}
	p, errResp := ParseBodyOrFail(r)
	if errResp != nil {
		errResp.Write(w)
		return
	}

	id := p.Get("id")
	if id == "" {
		id = sanitizeInput(r.URL.Query().Get("id"))
	}
	if id == "" {
		BadRequestError("Missing expense id").Write(w)
		return
	}

	ev, _ := s.svc.DeleteExpense(r.Context(), id)

	NewHTMXResponse().
		TriggerExpensesChanged(ev.Version).
		TriggerSuccessNotification(msgExpenseDeleted).
		Write(w)
}
