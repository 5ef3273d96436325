package services

import "errors"

// Service-level error kinds. Handlers map these onto HTTP status codes;
// everything unmatched becomes a 500.
var (
	ErrNotFound              = errors.New("resource not found")
	ErrIneligible            = errors.New("user is not eligible")
	ErrInvalidInput          = errors.New("invalid input")
	ErrDuplicateResource     = errors.New("resource already exists")
	ErrNoReferralSource      = errors.New("no referral source attributed")
	ErrBelowMinimumThreshold = errors.New("balance below minimum payout threshold")
	ErrNoEligibleConversions = errors.New("no eligible conversions to pay out")
	ErrUnavailable           = errors.New("service temporarily unavailable")
)

// Detail errors carried inside a kind.
var (
	errRateTooHigh       = errors.New("percentage rate cannot exceed 100")
	errProgramEnded      = errors.New("program has ended")
	errProgramInactive   = errors.New("program is not active")
	errCodeInactive      = errors.New("referral code is not active")
	errAccountTooYoung   = errors.New("account does not meet minimum age")
	errNotEnoughReferrals = errors.New("account does not meet minimum prior referrals")
	errCategoryExcluded  = errors.New("account category is not allowed in this program")
	errSelfConversion    = errors.New("referrer cannot convert through their own code")
	errAttributionExpired = errors.New("attribution window has expired")
	errBadTransition     = errors.New("conversion cannot transition to requested status")
)

// wrapKind attaches a kind sentinel to a detailed error so callers can
// match with errors.Is while logs keep the full chain.
func wrapKind(kind, detail error) error {
	if detail == nil {
		return kind
	}
	return &kindError{kind: kind, detail: detail}
}

type kindError struct {
	kind   error
	detail error
}

func (e *kindError) Error() string {
	return e.kind.Error() + ": " + e.detail.Error()
}

func (e *kindError) Is(target error) bool {
	return target == e.kind
}

func (e *kindError) Unwrap() error {
	return e.detail
}
