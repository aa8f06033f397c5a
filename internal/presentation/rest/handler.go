package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/loanworks/loan-engine/internal/application/dto"
	"github.com/loanworks/loan-engine/internal/application/usecase"
	"github.com/loanworks/loan-engine/internal/domain/model"
	"github.com/loanworks/loan-engine/internal/infrastructure/config"
	"github.com/loanworks/loan-engine/internal/infrastructure/observability"
)

const dateLayout = "2006-01-02"

// LoanHandler exposes the loan engine over HTTP. All request validation
// happens here; the use cases only ever see fully-typed, validated values.
type LoanHandler struct {
	createUC      *usecase.CreateLoanUseCase
	repaymentUC   *usecase.MakeRepaymentUseCase
	delinquencyUC *usecase.CheckDelinquencyUseCase
	getLoanUC     *usecase.GetLoanUseCase
	engineCfg     config.EngineConfig
	validate      *validator.Validate
	metrics       *observability.Metrics
	logger        *slog.Logger
}

// NewLoanHandler creates the handler with all use-case dependencies.
func NewLoanHandler(
	createUC *usecase.CreateLoanUseCase,
	repaymentUC *usecase.MakeRepaymentUseCase,
	delinquencyUC *usecase.CheckDelinquencyUseCase,
	getLoanUC *usecase.GetLoanUseCase,
	engineCfg config.EngineConfig,
	metrics *observability.Metrics,
	logger *slog.Logger,
) *LoanHandler {
	return &LoanHandler{
		createUC:      createUC,
		repaymentUC:   repaymentUC,
		delinquencyUC: delinquencyUC,
		getLoanUC:     getLoanUC,
		engineCfg:     engineCfg,
		validate:      validator.New(),
		metrics:       metrics,
		logger:        logger,
	}
}

// RegisterRoutes attaches all loan routes to the router.
func (h *LoanHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/loans", h.createLoan).Methods(http.MethodPost)
	r.HandleFunc("/loans/{loan_id}", h.getLoan).Methods(http.MethodGet)
	r.HandleFunc("/loans/{loan_id}/schedule", h.getSchedule).Methods(http.MethodGet)
	r.HandleFunc("/loans/{loan_id}/repayment", h.recordRepayment).Methods(http.MethodPost)
	r.HandleFunc("/loans/{loan_id}/outstanding", h.getOutstanding).Methods(http.MethodGet)
	r.HandleFunc("/loans/{loan_id}/delinquency", h.checkDelinquency).Methods(http.MethodGet)
}

// ---------------------------------------------------------------------------
// request bodies
// ---------------------------------------------------------------------------

type createLoanRequest struct {
	PrincipalAmount decimal.Decimal `json:"principal_amount"`
	InterestRate    decimal.Decimal `json:"interest_rate"`
	InterestType    string          `json:"interest_type" validate:"required,oneof=FLAT REDUCING"`
	Tenor           int             `json:"tenor" validate:"required,min=1"`
	TenorType       string          `json:"tenor_type" validate:"required,oneof=WEEK MONTH"`
	StartDate       string          `json:"start_date" validate:"required,datetime=2006-01-02"`
}

type recordRepaymentRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate string          `json:"payment_date" validate:"required,datetime=2006-01-02"`
}

// ---------------------------------------------------------------------------
// handlers
// ---------------------------------------------------------------------------

func (h *LoanHandler) createLoan(w http.ResponseWriter, r *http.Request) {
	var req createLoanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !req.PrincipalAmount.IsPositive() {
		h.writeError(w, http.StatusBadRequest, "principal_amount must be positive")
		return
	}
	minRate := decimal.NewFromFloat(h.engineCfg.MinRate)
	maxRate := decimal.NewFromFloat(h.engineCfg.MaxRate)
	if req.InterestRate.LessThan(minRate) || req.InterestRate.GreaterThan(maxRate) {
		h.writeError(w, http.StatusBadRequest, "interest_rate out of range")
		return
	}

	startDate, _ := time.Parse(dateLayout, req.StartDate)

	resp, err := h.createUC.Execute(r.Context(), dto.CreateLoanRequest{
		PrincipalAmount: req.PrincipalAmount,
		InterestRate:    req.InterestRate,
		InterestType:    req.InterestType,
		Tenor:           req.Tenor,
		TenorType:       req.TenorType,
		StartDate:       startDate,
	})
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	if h.metrics != nil {
		h.metrics.LoansOriginated.Add(r.Context(), 1)
	}
	h.writeJSON(w, http.StatusCreated, resp)
}

func (h *LoanHandler) recordRepayment(w http.ResponseWriter, r *http.Request) {
	loanID, ok := h.loanID(w, r)
	if !ok {
		return
	}

	var req recordRepaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !req.Amount.IsPositive() {
		h.writeError(w, http.StatusBadRequest, "amount must be positive")
		return
	}

	paymentDate, _ := time.Parse(dateLayout, req.PaymentDate)

	resp, err := h.repaymentUC.Execute(r.Context(), dto.MakeRepaymentRequest{
		LoanID:      loanID,
		Amount:      req.Amount,
		PaymentDate: paymentDate,
	})
	if err != nil {
		if h.metrics != nil {
			h.metrics.RepaymentsFailed.Add(r.Context(), 1)
		}
		h.writeDomainError(w, r, err)
		return
	}

	if h.metrics != nil {
		h.metrics.RepaymentsApplied.Add(r.Context(), 1)
	}
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *LoanHandler) getLoan(w http.ResponseWriter, r *http.Request) {
	loanID, ok := h.loanID(w, r)
	if !ok {
		return
	}
	resp, err := h.getLoanUC.Execute(r.Context(), loanID, false)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *LoanHandler) getSchedule(w http.ResponseWriter, r *http.Request) {
	loanID, ok := h.loanID(w, r)
	if !ok {
		return
	}
	resp, err := h.getLoanUC.Execute(r.Context(), loanID, true)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, resp.Schedule)
}

func (h *LoanHandler) getOutstanding(w http.ResponseWriter, r *http.Request) {
	loanID, ok := h.loanID(w, r)
	if !ok {
		return
	}
	resp, err := h.getLoanUC.Outstanding(r.Context(), loanID)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *LoanHandler) checkDelinquency(w http.ResponseWriter, r *http.Request) {
	loanID, ok := h.loanID(w, r)
	if !ok {
		return
	}

	asOf := time.Now().UTC().Truncate(24 * time.Hour)
	if raw := r.URL.Query().Get("as_of_date"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, "as_of_date must be YYYY-MM-DD")
			return
		}
		asOf = parsed
	}

	resp, err := h.delinquencyUC.Execute(r.Context(), dto.CheckDelinquencyRequest{
		LoanID:   loanID,
		AsOfDate: asOf,
	})
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, resp)
}

// ---------------------------------------------------------------------------
// helpers
// ---------------------------------------------------------------------------

func (h *LoanHandler) loanID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := mux.Vars(r)["loan_id"]
	id, err := uuid.Parse(raw)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid loan ID format")
		return uuid.Nil, false
	}
	return id, true
}

func (h *LoanHandler) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var mismatch *model.AmountMismatchError

	switch {
	case errors.Is(err, model.ErrLoanNotFound):
		h.writeError(w, http.StatusNotFound, "loan not found")
	case errors.Is(err, model.ErrNoDueInstallments):
		h.writeError(w, http.StatusBadRequest, "no due installments found")
	case errors.As(err, &mismatch):
		h.writeError(w, http.StatusBadRequest, mismatch.Error())
	case errors.Is(err, model.ErrInvalidArgument):
		h.writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, model.ErrConcurrentUpdate):
		h.writeError(w, http.StatusConflict, "loan was modified concurrently, retry")
	default:
		h.logger.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func (h *LoanHandler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("write response", "error", err)
	}
}

func (h *LoanHandler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"message": message})
}
