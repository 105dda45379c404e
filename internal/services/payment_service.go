package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	payos "github.com/payOSHQ/payos-lib-golang"
	"gorm.io/gorm"

	dbm "dreamoracle/internal/models/db_models"
	"dreamoracle/internal/models/response_models"
)

type PayOSConfig struct {
	ClientID     string
	ApiKey       string
	ChecksumKey  string // secret used to sign webhooks
	ReturnURL    string
	CancelURL    string
	ProviderName string // "payos" (stored on Transaction.Provider)
}

type PaymentService interface {
	CreateCheckoutForPlan(ctx context.Context, accountID uuid.UUID, planCode string) (*response_models.CreateCheckoutResponse, error)
	HandleWebhook(c *gin.Context)
}

type paymentService struct {
	db  *gorm.DB
	cfg PayOSConfig
}

func NewPaymentService(db *gorm.DB, cfg PayOSConfig) (PaymentService, error) {
	if cfg.ClientID == "" || cfg.ApiKey == "" || cfg.ChecksumKey == "" {
		return nil, errors.New("missing payOS credentials")
	}
	if cfg.ProviderName == "" {
		cfg.ProviderName = "payos"
	}

	return &paymentService{
		db:  db,
		cfg: cfg,
	}, nil
}

func (p *paymentService) CreateCheckoutForPlan(ctx context.Context, accountID uuid.UUID, planCode string) (*response_models.CreateCheckoutResponse, error) {
	var plan dbm.Plan
	if err := p.db.WithContext(ctx).
		Where("code = ? AND is_active = TRUE", planCode).
		First(&plan).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("plan not found: %s", planCode)
		}
		return nil, err
	}

	amount := plan.PriceMinor
	if amount <= 0 {
		return nil, fmt.Errorf("plan %s is not billable (amount=%d)", planCode, amount)
	}

	// payOS expects an int64 order code; unix seconds plus a short random
	// suffix keeps it unique enough and within 13 digits.
	orderCode := time.Now().Unix()%1_000_000_000 + int64(rand.Intn(9000)+1000)

	// Pending transaction first; the webhook matches on ProviderTxnID.
	txn := &dbm.Transaction{
		AccountID:     accountID,
		AmountMinor:   amount,
		Currency:      strings.ToUpper(plan.Currency),
		Status:        dbm.TxnStatusPending,
		Provider:      p.cfg.ProviderName,
		ProviderTxnID: fmt.Sprintf("payos:%d", orderCode),
	}

	meta := map[string]any{
		"plan_id":   plan.ID,
		"plan_code": plan.Code,
	}
	if bytes, err := json.Marshal(meta); err == nil {
		txn.Metadata = bytes
	}

	if err := p.db.WithContext(ctx).Create(txn).Error; err != nil {
		return nil, fmt.Errorf("create transaction: %w", err)
	}

	if err := payos.Key(p.cfg.ClientID, p.cfg.ApiKey, p.cfg.ChecksumKey); err != nil {
		return nil, fmt.Errorf("payos client init: %w", err)
	}

	body := payos.CheckoutRequestType{
		OrderCode: orderCode,
		Amount:    int(amount),
		Items: []payos.Item{{
			Name:     fmt.Sprintf("%s (%s)", plan.Name, plan.Code),
			Price:    int(amount),
			Quantity: 1,
		}},
		Description: fmt.Sprintf("Subscription %s", plan.Code),
		CancelUrl:   p.cfg.CancelURL,
		ReturnUrl:   p.cfg.ReturnURL,
	}

	resp, err := payos.CreatePaymentLink(body)
	if err != nil {
		_ = p.db.WithContext(ctx).Model(txn).
			Update("status", dbm.TxnStatusFailed).Error
		return nil, fmt.Errorf("payos create link: %w", err)
	}

	return &response_models.CreateCheckoutResponse{
		OrderCode:    orderCode,
		Amount:       amount,
		PaymentURL:   resp.CheckoutUrl,
		ProviderName: p.cfg.ProviderName,
	}, nil
}

func (p *paymentService) HandleWebhook(c *gin.Context) {
	if err := payos.Key(p.cfg.ClientID, p.cfg.ApiKey, p.cfg.ChecksumKey); err != nil {
		log.Printf("webhook: payos key: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Payment provider misconfigured"})
		return
	}

	rawBody, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read request body"})
		return
	}

	var body payos.WebhookType
	if err := json.Unmarshal(rawBody, &body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid webhook payload"})
		return
	}

	data, payosErr := payos.VerifyPaymentWebhookData(body)
	if payosErr != nil {
		log.Printf("webhook: verify: %v", payosErr)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Failed to verify webhook data"})
		return
	}

	orderCode := data.OrderCode
	providerTxn := fmt.Sprintf("payos:%d", orderCode)

	var txn dbm.Transaction
	if err := p.db.
		Where("provider_txn_id = ?", providerTxn).
		First(&txn).Error; err != nil {
		// Ack 200 to avoid a retry storm; log for investigation.
		log.Printf("webhook: transaction not found for order %d", orderCode)
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
		return
	}

	// Idempotency: a replayed webhook for an already-paid txn is a no-op.
	if txn.Status != dbm.TxnStatusPaid {
		now := time.Now().Unix()
		err = p.db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&txn).Updates(map[string]interface{}{
				"status":  dbm.TxnStatusPaid,
				"paid_at": now,
			}).Error; err != nil {
				return err
			}
			return p.activateSubscription(tx, &txn)
		})
		if err != nil {
			log.Printf("webhook: failed to update txn/subscription for order %d: %v", orderCode, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process transaction"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "ok"})
}

func (p *paymentService) activateSubscription(tx *gorm.DB, txn *dbm.Transaction) error {
	var m struct {
		PlanID   uuid.UUID `json:"plan_id"`
		PlanCode string    `json:"plan_code"`
	}
	if err := json.Unmarshal(txn.Metadata, &m); err != nil || m.PlanCode == "" {
		return fmt.Errorf("missing plan info in transaction metadata")
	}

	var plan dbm.Plan
	if err := tx.Where("id = ? AND is_active = TRUE", m.PlanID).First(&plan).Error; err != nil {
		return fmt.Errorf("plan not found while activating: %w", err)
	}

	now := time.Now()
	starts := now

	// An active auto-renewing subscription extends from its end instead of
	// overlapping.
	var current dbm.Subscription
	err := tx.
		Where("account_id = ? AND status IN ? AND ends_at >= ?",
			txn.AccountID,
			[]dbm.SubscriptionStatus{dbm.SubStatusActive, dbm.SubStatusPastDue},
			now.Add(-24*time.Hour).Unix()).
		Order("ends_at DESC").
		First(&current).Error

	if err == nil && current.Status == dbm.SubStatusActive && current.AutoRenew && current.EndsAt > now.Unix() {
		starts = time.Unix(current.EndsAt, 0)
	}

	var ends time.Time
	switch plan.Period {
	case dbm.PeriodYear:
		ends = starts.AddDate(1, 0, 0)
	default:
		ends = starts.AddDate(0, 1, 0)
	}

	sub := dbm.Subscription{
		AccountID: txn.AccountID,
		PlanID:    plan.ID,
		Status:    dbm.SubStatusActive,
		StartsAt:  starts.Unix(),
		EndsAt:    ends.Unix(),
		AutoRenew: true,

		Provider:      p.cfg.ProviderName,
		ProviderSubID: fmt.Sprintf("payos-sub:%d", time.Now().UnixNano()),

		Metadata: jsonRaw(map[string]any{
			"activated_by_txn": txn.ID,
			"amount_minor":     txn.AmountMinor,
			"currency":         txn.Currency,
		}),
	}

	if err := tx.Create(&sub).Error; err != nil {
		return err
	}

	// Snapshot the entitlement onto the account: this is what the credit
	// checker reads. The billing anchor moves to the payment day.
	endsAt := sub.EndsAt
	return tx.Model(&dbm.Account{BaseModel: dbm.BaseModel{ID: txn.AccountID}}).
		Updates(map[string]interface{}{
			"subscription_tier":   plan.Tier,
			"subscription_status": dbm.SubStatusActive,
			"subscription_ends":   endsAt,
			"credits_reset_at":    starts.Unix(),
		}).Error
}

func jsonRaw(v any) []byte {
	b, _ := json.Marshal(v)
	return b
}
