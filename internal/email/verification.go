package email

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

const verificationSendTimeout = 10 * time.Second

// SendVerificationCode delivers a sign-up verification code. Delivery
// runs in the background; a failed send is logged, never surfaced to
// the caller, so sign-up does not block on SES.
func SendVerificationCode(ctx context.Context, sender Sender, recipient, code string, ttl time.Duration) {
	if sender == nil {
		return
	}

	subject := "Verify your Camber Scouting account"
	body := fmt.Sprintf(
		"Your verification code is %s.\n\nIt expires in %d minutes. If you did not create an account, ignore this message.\n",
		code,
		int(ttl.Minutes()),
	)

	if ctx == nil {
		ctx = context.Background()
	}

	go func() {
		// The send outlives the request: drop its cancellation but keep
		// a hard cap on how long SES may take.
		sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), verificationSendTimeout)
		defer cancel()

		if err := sender.Send(sendCtx, recipient, subject, body); err != nil {
			log.Error().Err(err).Msg("Failed to send verification code")
		}
	}()
}
