package server

import (
	"github.com/gofiber/fiber/v2"

	"betbroker/service"
)

// Handler bundles the business services behind the HTTP routes
type Handler struct {
	betting    service.BettingService
	settlement service.SettlementService
	balance    service.BalanceService
	account    service.AccountService
}

// NewHandler creates the HTTP handler set
func NewHandler(
	betting service.BettingService,
	settlement service.SettlementService,
	balance service.BalanceService,
	account service.AccountService,
) *Handler {
	return &Handler{
		betting:    betting,
		settlement: settlement,
		balance:    balance,
		account:    account,
	}
}

type placeBetRequest struct {
	Amount int64 `json:"amount"`
}

// PlaceBet handles POST /api/bets
func (h *Handler) PlaceBet(c *fiber.Ctx) error {
	var req placeBetRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, service.NewError(service.KindValidation, "invalid request body"))
	}

	record, err := h.betting.PlaceBet(c.Context(), UserID(c), req.Amount)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(record)
}

// ListBets handles GET /api/bets
func (h *Handler) ListBets(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)

	records, err := h.betting.ListBets(c.Context(), UserID(c), limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"bets": records})
}

// GetBet handles GET /api/bets/:id
func (h *Handler) GetBet(c *fiber.Ctx) error {
	betID, err := c.ParamsInt("id")
	if err != nil || betID <= 0 {
		return respondError(c, service.NewError(service.KindValidation, "invalid bet id"))
	}

	record, err := h.betting.GetBet(c.Context(), UserID(c), int64(betID))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(record)
}

// GetRecommendedBet handles GET /api/bets/recommended
func (h *Handler) GetRecommendedBet(c *fiber.Ctx) error {
	amount, err := h.betting.GetRecommendedBet(c.Context(), UserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"recommended_amount": amount})
}

type resolveWinRequest struct {
	BetID string `json:"bet_id"`
}

// ResolveWin handles POST /api/bets/win
func (h *Handler) ResolveWin(c *fiber.Ctx) error {
	var req resolveWinRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, service.NewError(service.KindValidation, "invalid request body"))
	}

	result, err := h.settlement.ResolveWin(c.Context(), UserID(c), req.BetID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

// GetBalance handles GET /api/balance
func (h *Handler) GetBalance(c *fiber.Ctx) error {
	info, err := h.balance.GetBalance(c.Context(), UserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(info)
}

// SyncBalance handles POST /api/balance/sync
func (h *Handler) SyncBalance(c *fiber.Ctx) error {
	info, err := h.balance.SyncExternalBalance(c.Context(), UserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(info)
}

// ListTransactions handles GET /api/transactions
func (h *Handler) ListTransactions(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)

	transactions, err := h.balance.ListTransactions(c.Context(), UserID(c), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"transactions": transactions})
}

// GetAccount handles GET /api/account
func (h *Handler) GetAccount(c *fiber.Ctx) error {
	info, err := h.account.GetAccount(c.Context(), UserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(info)
}
