package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"mewayz/internal/models"
	"mewayz/internal/repositories/interfaces"
	"mewayz/internal/utils"
	"mewayz/pkg/email"
	"mewayz/pkg/logger"
	"mewayz/pkg/payment"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// In-memory repository fakes backing the service tests. They implement
// just enough of each interface's semantics: unique code inserts,
// status filters and counter bumps.

func testLogger() *logger.Logger {
	log, _ := logger.NewLogger(&logger.Config{Level: logger.ErrorLevel, Format: "text"})
	return log
}

type fakeUserRepo struct {
	users map[primitive.ObjectID]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[primitive.ObjectID]*models.User)}
}

func (f *fakeUserRepo) add(user *models.User) *models.User {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	f.users[user.ID] = user
	return user
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	for _, existing := range f.users {
		if existing.Email == user.Email {
			return interfaces.ErrDuplicateEmail
		}
	}
	f.add(user)
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, interfaces.ErrNotFound
}

func (f *fakeUserRepo) GetByGoogleID(ctx context.Context, googleID string) (*models.User, error) {
	for _, user := range f.users {
		if user.GoogleID == googleID {
			return user, nil
		}
	}
	return nil, interfaces.ErrNotFound
}

func (f *fakeUserRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	if _, ok := f.users[id]; !ok {
		return interfaces.ErrNotFound
	}
	return nil
}

func (f *fakeUserRepo) UpdateLastLogin(ctx context.Context, id primitive.ObjectID, ip string) error {
	user, ok := f.users[id]
	if !ok {
		return interfaces.ErrNotFound
	}
	user.LastKnownIP = ip
	return nil
}

func (f *fakeUserRepo) AddDeviceToken(ctx context.Context, id primitive.ObjectID, token models.DeviceToken) error {
	user, ok := f.users[id]
	if !ok {
		return interfaces.ErrNotFound
	}
	user.DeviceTokens = append(user.DeviceTokens, token)
	return nil
}

func (f *fakeUserRepo) RemoveDeviceToken(ctx context.Context, id primitive.ObjectID, token string) error {
	return nil
}

func (f *fakeUserRepo) List(ctx context.Context, params *utils.PaginationParams) ([]*models.User, int64, error) {
	var out []*models.User
	for _, user := range f.users {
		out = append(out, user)
	}
	return out, int64(len(out)), nil
}

type fakeProgramRepo struct {
	programs       map[primitive.ObjectID]*models.ReferralProgram
	referrerBumps  int
	clickBumps     int
	conversionSum  float64
	paidOutSum     float64
}

func newFakeProgramRepo() *fakeProgramRepo {
	return &fakeProgramRepo{programs: make(map[primitive.ObjectID]*models.ReferralProgram)}
}

func (f *fakeProgramRepo) add(program *models.ReferralProgram) *models.ReferralProgram {
	if program.ID.IsZero() {
		program.ID = primitive.NewObjectID()
	}
	f.programs[program.ID] = program
	return program
}

func (f *fakeProgramRepo) Create(ctx context.Context, program *models.ReferralProgram) error {
	f.add(program)
	return nil
}

func (f *fakeProgramRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.ReferralProgram, error) {
	program, ok := f.programs[id]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	return program, nil
}

func (f *fakeProgramRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	if _, ok := f.programs[id]; !ok {
		return interfaces.ErrNotFound
	}
	return nil
}

func (f *fakeProgramRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	delete(f.programs, id)
	return nil
}

func (f *fakeProgramRepo) List(ctx context.Context, workspaceID primitive.ObjectID, params *utils.PaginationParams) ([]*models.ReferralProgram, int64, error) {
	var out []*models.ReferralProgram
	for _, program := range f.programs {
		if program.WorkspaceID == workspaceID {
			out = append(out, program)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeProgramRepo) GetActivePrograms(ctx context.Context, workspaceID primitive.ObjectID) ([]*models.ReferralProgram, error) {
	var out []*models.ReferralProgram
	for _, program := range f.programs {
		if program.WorkspaceID == workspaceID && program.IsActive() {
			out = append(out, program)
		}
	}
	return out, nil
}

func (f *fakeProgramRepo) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.ProgramStatus) error {
	program, ok := f.programs[id]
	if !ok {
		return interfaces.ErrNotFound
	}
	program.Status = status
	return nil
}

func (f *fakeProgramRepo) IncrementReferrers(ctx context.Context, id primitive.ObjectID) error {
	f.referrerBumps++
	return nil
}

func (f *fakeProgramRepo) IncrementClicks(ctx context.Context, id primitive.ObjectID) error {
	f.clickBumps++
	return nil
}

func (f *fakeProgramRepo) RecordConversion(ctx context.Context, id primitive.ObjectID, commission float64) error {
	f.conversionSum += commission
	return nil
}

func (f *fakeProgramRepo) ReverseConversion(ctx context.Context, id primitive.ObjectID, commission float64) error {
	f.conversionSum -= commission
	return nil
}

func (f *fakeProgramRepo) RecordPayout(ctx context.Context, id primitive.ObjectID, amount float64) error {
	f.paidOutSum += amount
	return nil
}

type fakeCodeRepo struct {
	codes map[primitive.ObjectID]*models.ReferralCode
	// forced duplicate count for exercising insert retries
	duplicateInserts int
	creates          int
}

func newFakeCodeRepo() *fakeCodeRepo {
	return &fakeCodeRepo{codes: make(map[primitive.ObjectID]*models.ReferralCode)}
}

func (f *fakeCodeRepo) add(code *models.ReferralCode) *models.ReferralCode {
	if code.ID.IsZero() {
		code.ID = primitive.NewObjectID()
	}
	f.codes[code.ID] = code
	return code
}

func (f *fakeCodeRepo) Create(ctx context.Context, code *models.ReferralCode) error {
	f.creates++
	if f.duplicateInserts > 0 {
		f.duplicateInserts--
		return interfaces.ErrDuplicateCode
	}
	upper := strings.ToUpper(code.Code)
	for _, existing := range f.codes {
		if existing.Code == upper {
			return interfaces.ErrDuplicateCode
		}
	}
	code.Code = upper
	code.CreatedAt = time.Now()
	f.add(code)
	return nil
}

func (f *fakeCodeRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.ReferralCode, error) {
	code, ok := f.codes[id]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	return code, nil
}

func (f *fakeCodeRepo) GetByCode(ctx context.Context, raw string) (*models.ReferralCode, error) {
	upper := strings.ToUpper(raw)
	for _, code := range f.codes {
		if code.Code == upper {
			return code, nil
		}
	}
	return nil, interfaces.ErrNotFound
}

func (f *fakeCodeRepo) GetByUserAndProgram(ctx context.Context, userID, programID primitive.ObjectID) (*models.ReferralCode, error) {
	for _, code := range f.codes {
		if code.UserID == userID && code.ProgramID == programID && code.Status != models.CodeStatusDisabled {
			return code, nil
		}
	}
	return nil, interfaces.ErrNotFound
}

func (f *fakeCodeRepo) ListByUser(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.ReferralCode, int64, error) {
	var out []*models.ReferralCode
	for _, code := range f.codes {
		if code.UserID == userID {
			out = append(out, code)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeCodeRepo) ListByProgram(ctx context.Context, programID primitive.ObjectID, params *utils.PaginationParams) ([]*models.ReferralCode, int64, error) {
	var out []*models.ReferralCode
	for _, code := range f.codes {
		if code.ProgramID == programID {
			out = append(out, code)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeCodeRepo) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.CodeStatus) error {
	code, ok := f.codes[id]
	if !ok {
		return interfaces.ErrNotFound
	}
	code.Status = status
	return nil
}

func (f *fakeCodeRepo) CodeExists(ctx context.Context, raw string) (bool, error) {
	_, err := f.GetByCode(ctx, raw)
	if err == interfaces.ErrNotFound {
		return false, nil
	}
	return err == nil, err
}

func (f *fakeCodeRepo) CountByUser(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	var count int64
	for _, code := range f.codes {
		if code.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (f *fakeCodeRepo) IncrementClicks(ctx context.Context, id primitive.ObjectID, unique bool) error {
	code, ok := f.codes[id]
	if !ok {
		return interfaces.ErrNotFound
	}
	code.Tracking.TotalClicks++
	if unique {
		code.Tracking.UniqueClicks++
	}
	return nil
}

func (f *fakeCodeRepo) RecordReferral(ctx context.Context, id primitive.ObjectID) error {
	code, ok := f.codes[id]
	if !ok {
		return interfaces.ErrNotFound
	}
	code.Tracking.TotalReferrals++
	return nil
}

func (f *fakeCodeRepo) RecordConversion(ctx context.Context, id primitive.ObjectID, commission float64) error {
	code, ok := f.codes[id]
	if !ok {
		return interfaces.ErrNotFound
	}
	code.Tracking.Conversions++
	code.Tracking.TotalCommission += commission
	return nil
}

func (f *fakeCodeRepo) ReverseConversion(ctx context.Context, id primitive.ObjectID, commission float64) error {
	code, ok := f.codes[id]
	if !ok {
		return interfaces.ErrNotFound
	}
	code.Tracking.Conversions--
	code.Tracking.TotalCommission -= commission
	return nil
}

func (f *fakeCodeRepo) TopCodesByUser(ctx context.Context, userID primitive.ObjectID, programID *primitive.ObjectID, limit int) ([]*models.ReferralCode, error) {
	var codes []*models.ReferralCode
	for _, code := range f.codes {
		if code.UserID != userID {
			continue
		}
		if programID != nil && code.ProgramID != *programID {
			continue
		}
		codes = append(codes, code)
	}
	if len(codes) > limit {
		codes = codes[:limit]
	}
	return codes, nil
}

func (f *fakeCodeRepo) TotalsByUser(ctx context.Context, userID primitive.ObjectID, programID *primitive.ObjectID) (models.CodeTracking, error) {
	var totals models.CodeTracking
	for _, code := range f.codes {
		if code.UserID != userID {
			continue
		}
		if programID != nil && code.ProgramID != *programID {
			continue
		}
		totals.TotalClicks += code.Tracking.TotalClicks
		totals.UniqueClicks += code.Tracking.UniqueClicks
		totals.TotalReferrals += code.Tracking.TotalReferrals
		totals.Conversions += code.Tracking.Conversions
		totals.TotalCommission += code.Tracking.TotalCommission
	}
	return totals, nil
}

type fakeClickRepo struct {
	clicks      map[primitive.ObjectID]*models.ReferralClick
	codeIPCount map[string]int64
}

func newFakeClickRepo() *fakeClickRepo {
	return &fakeClickRepo{
		clicks:      make(map[primitive.ObjectID]*models.ReferralClick),
		codeIPCount: make(map[string]int64),
	}
}

func (f *fakeClickRepo) Create(ctx context.Context, click *models.ReferralClick) error {
	if click.ID.IsZero() {
		click.ID = primitive.NewObjectID()
	}
	if click.CreatedAt.IsZero() {
		click.CreatedAt = time.Now()
	}
	f.clicks[click.ID] = click
	return nil
}

func (f *fakeClickRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.ReferralClick, error) {
	click, ok := f.clicks[id]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	return click, nil
}

func (f *fakeClickRepo) ListByCode(ctx context.Context, codeID primitive.ObjectID, params *utils.PaginationParams) ([]*models.ReferralClick, int64, error) {
	var out []*models.ReferralClick
	for _, click := range f.clicks {
		if click.CodeID == codeID {
			out = append(out, click)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeClickRepo) CountByCodeAndIPSince(ctx context.Context, codeID primitive.ObjectID, ip string, since time.Time) (int64, error) {
	return f.codeIPCount[codeID.Hex()+":"+ip], nil
}

func (f *fakeClickRepo) ExistsInWindow(ctx context.Context, codeID primitive.ObjectID, ip string, since time.Time) (bool, error) {
	for _, click := range f.clicks {
		if click.CodeID == codeID && click.Visitor.IPAddress == ip && click.CreatedAt.After(since) {
			return true, nil
		}
	}
	return false, nil
}

type fakeConversionRepo struct {
	conversions map[primitive.ObjectID]*models.ReferralConversion
}

func newFakeConversionRepo() *fakeConversionRepo {
	return &fakeConversionRepo{conversions: make(map[primitive.ObjectID]*models.ReferralConversion)}
}

func (f *fakeConversionRepo) add(conversion *models.ReferralConversion) *models.ReferralConversion {
	if conversion.ID.IsZero() {
		conversion.ID = primitive.NewObjectID()
	}
	if conversion.CreatedAt.IsZero() {
		conversion.CreatedAt = time.Now()
	}
	f.conversions[conversion.ID] = conversion
	return conversion
}

func (f *fakeConversionRepo) Create(ctx context.Context, conversion *models.ReferralConversion) error {
	f.add(conversion)
	return nil
}

func (f *fakeConversionRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.ReferralConversion, error) {
	conversion, ok := f.conversions[id]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	return conversion, nil
}

func (f *fakeConversionRepo) UpdateStatus(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	conversion, ok := f.conversions[id]
	if !ok {
		return interfaces.ErrNotFound
	}
	if status, ok := updates["status"].(models.ConversionStatus); ok {
		conversion.Status = status
	}
	return nil
}

func (f *fakeConversionRepo) ListByReferrer(ctx context.Context, referrerID primitive.ObjectID, status models.ConversionStatus, params *utils.PaginationParams) ([]*models.ReferralConversion, int64, error) {
	var out []*models.ReferralConversion
	for _, conversion := range f.conversions {
		if conversion.ReferrerID != referrerID {
			continue
		}
		if status != "" && conversion.Status != status {
			continue
		}
		out = append(out, conversion)
	}
	return out, int64(len(out)), nil
}

func (f *fakeConversionRepo) ListByProgram(ctx context.Context, programID primitive.ObjectID, status models.ConversionStatus, params *utils.PaginationParams) ([]*models.ReferralConversion, int64, error) {
	var out []*models.ReferralConversion
	for _, conversion := range f.conversions {
		if conversion.ProgramID != programID {
			continue
		}
		if status != "" && conversion.Status != status {
			continue
		}
		out = append(out, conversion)
	}
	return out, int64(len(out)), nil
}

func (f *fakeConversionRepo) GetEligibleForPayout(ctx context.Context, referrerID, programID primitive.ObjectID, approvedBefore time.Time) ([]*models.ReferralConversion, error) {
	var out []*models.ReferralConversion
	for _, conversion := range f.conversions {
		if conversion.ReferrerID != referrerID || conversion.ProgramID != programID {
			continue
		}
		if conversion.Status != models.ConversionStatusApproved || conversion.PayoutID != nil {
			continue
		}
		if conversion.ApprovedAt == nil || conversion.ApprovedAt.After(approvedBefore) {
			continue
		}
		out = append(out, conversion)
	}
	return out, nil
}

func (f *fakeConversionRepo) MarkPaid(ctx context.Context, ids []primitive.ObjectID, payoutID primitive.ObjectID) error {
	for _, id := range ids {
		conversion, ok := f.conversions[id]
		if !ok || conversion.Status != models.ConversionStatusApproved {
			return errors.New("conversion not eligible")
		}
	}
	now := time.Now()
	for _, id := range ids {
		conversion := f.conversions[id]
		conversion.Status = models.ConversionStatusPaid
		pid := payoutID
		conversion.PayoutID = &pid
		conversion.PaidAt = &now
	}
	return nil
}

func (f *fakeConversionRepo) CountByReferrer(ctx context.Context, referrerID primitive.ObjectID) (int64, error) {
	var count int64
	for _, conversion := range f.conversions {
		if conversion.ReferrerID == referrerID {
			count++
		}
	}
	return count, nil
}

func (f *fakeConversionRepo) SumCommissionByStatus(ctx context.Context, referrerID primitive.ObjectID, programID *primitive.ObjectID, status models.ConversionStatus) (float64, error) {
	var sum float64
	for _, conversion := range f.conversions {
		if conversion.ReferrerID != referrerID || conversion.Status != status {
			continue
		}
		if programID != nil && conversion.ProgramID != *programID {
			continue
		}
		sum += conversion.Commission.Primary
	}
	return sum, nil
}

func (f *fakeConversionRepo) CountByReferredUserSince(ctx context.Context, referredUser primitive.ObjectID, programID primitive.ObjectID) (int64, error) {
	var count int64
	for _, conversion := range f.conversions {
		if conversion.ReferredUser != nil && *conversion.ReferredUser == referredUser && conversion.ProgramID == programID {
			count++
		}
	}
	return count, nil
}

func (f *fakeConversionRepo) RecentByReferrer(ctx context.Context, referrerID primitive.ObjectID, programID *primitive.ObjectID, limit int) ([]*models.ReferralConversion, error) {
	var out []*models.ReferralConversion
	for _, conversion := range f.conversions {
		if conversion.ReferrerID != referrerID {
			continue
		}
		if programID != nil && conversion.ProgramID != *programID {
			continue
		}
		out = append(out, conversion)
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeConversionRepo) MonthlyBreakdown(ctx context.Context, referrerID primitive.ObjectID, programID *primitive.ObjectID, months int) ([]models.MonthlyStats, error) {
	return nil, nil
}

func (f *fakeConversionRepo) MonthlyVolumeByProgram(ctx context.Context, programID primitive.ObjectID, months int) ([]models.MonthlyStats, error) {
	return nil, nil
}

func (f *fakeConversionRepo) TopReferrersByProgram(ctx context.Context, programID primitive.ObjectID, limit int) ([]models.ReferrerStats, error) {
	return nil, nil
}

type fakePayoutRepo struct {
	payouts map[primitive.ObjectID]*models.ReferralPayout
}

func newFakePayoutRepo() *fakePayoutRepo {
	return &fakePayoutRepo{payouts: make(map[primitive.ObjectID]*models.ReferralPayout)}
}

func (f *fakePayoutRepo) Create(ctx context.Context, payout *models.ReferralPayout) error {
	if payout.ID.IsZero() {
		payout.ID = primitive.NewObjectID()
	}
	if payout.CreatedAt.IsZero() {
		payout.CreatedAt = time.Now()
	}
	f.payouts[payout.ID] = payout
	return nil
}

func (f *fakePayoutRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.ReferralPayout, error) {
	payout, ok := f.payouts[id]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	return payout, nil
}

func (f *fakePayoutRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	payout, ok := f.payouts[id]
	if !ok {
		return interfaces.ErrNotFound
	}
	if status, ok := updates["status"].(models.PayoutStatus); ok {
		payout.Status = status
	}
	if txID, ok := updates["transaction_id"].(string); ok {
		payout.TransactionID = txID
	}
	if reason, ok := updates["failure_reason"].(string); ok {
		payout.FailureReason = reason
	}
	return nil
}

func (f *fakePayoutRepo) ListByUser(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.ReferralPayout, int64, error) {
	var out []*models.ReferralPayout
	for _, payout := range f.payouts {
		if payout.UserID == userID {
			out = append(out, payout)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakePayoutRepo) ListByProgram(ctx context.Context, programID primitive.ObjectID, params *utils.PaginationParams) ([]*models.ReferralPayout, int64, error) {
	var out []*models.ReferralPayout
	for _, payout := range f.payouts {
		if payout.ProgramID == programID {
			out = append(out, payout)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakePayoutRepo) GetByStatus(ctx context.Context, status models.PayoutStatus, params *utils.PaginationParams) ([]*models.ReferralPayout, int64, error) {
	var out []*models.ReferralPayout
	for _, payout := range f.payouts {
		if payout.Status == status {
			out = append(out, payout)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakePayoutRepo) SumCompletedByUser(ctx context.Context, userID primitive.ObjectID, programID *primitive.ObjectID) (float64, error) {
	var sum float64
	for _, payout := range f.payouts {
		if payout.UserID != userID || payout.Status != models.PayoutStatusCompleted {
			continue
		}
		if programID != nil && payout.ProgramID != *programID {
			continue
		}
		sum += payout.Amount
	}
	return sum, nil
}

// fakeTransactor runs the callback without a real session. The services
// only pass the session context through to the repositories, so nil works.
type fakeTransactor struct{}

func (f *fakeTransactor) WithTransaction(ctx context.Context, fn func(sessCtx mongo.SessionContext) (interface{}, error)) (interface{}, error) {
	return fn(nil)
}

type fakeDedupe struct {
	claimed map[string]bool
	err     error
}

func newFakeDedupe() *fakeDedupe {
	return &fakeDedupe{claimed: make(map[string]bool)}
}

func (f *fakeDedupe) SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	if f.claimed[key] {
		return false, nil
	}
	f.claimed[key] = true
	return true, nil
}

type fakeEmailProvider struct {
	mu   sync.Mutex
	sent []*email.EmailRequest
}

func (f *fakeEmailProvider) SendEmail(ctx context.Context, request *email.EmailRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, request)
	return nil
}

func (f *fakeEmailProvider) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

func (f *fakeEmailProvider) last() *email.EmailRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.sent) == 0 {
		return nil
	}
	return f.sent[len(f.sent)-1]
}

type fakePayoutProvider struct {
	fail      bool
	disbursed []*payment.DisbursementRequest
}

func (f *fakePayoutProvider) Disburse(ctx context.Context, request *payment.DisbursementRequest) (*payment.DisbursementResponse, error) {
	if f.fail {
		return nil, errors.New("provider rejected the transfer")
	}
	f.disbursed = append(f.disbursed, request)
	return &payment.DisbursementResponse{
		TransactionID: "tx_" + request.PayoutID,
		Status:        "completed",
	}, nil
}

func (f *fakePayoutProvider) ValidateWebhook(ctx context.Context, payload []byte, signature string) (*payment.WebhookEvent, error) {
	return nil, errors.New("not implemented")
}
