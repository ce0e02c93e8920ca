package internal

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

var validate = validator.New()

type Config struct {
	GatewayURL      string        `env:"GATEWAY_URL,required=true" validate:"required,url"`
	LogLevel        string        `env:"LOG_LEVEL,default=INFO"`
	IdleThreshold   time.Duration `env:"IDLE_THRESHOLD,default=5m" validate:"gt=0"`
	BackoffInterval time.Duration `env:"BACKOFF_INTERVAL,default=5s" validate:"gt=0"`
	PollInterval    time.Duration `env:"POLL_INTERVAL,default=500ms" validate:"gt=0"`
	DialTimeout     time.Duration `env:"DIAL_TIMEOUT,default=10s" validate:"gt=0"`
	CensoredWords   string        `env:"CENSORED_WORDS"`
	CensorCharacter string        `env:"CENSOR_CHARACTER,default=*"`
	// DEBUG_PORT serves the storage inspector on localhost, 0 disables it
	DebugPort int `env:"DEBUG_PORT,default=0" validate:"gte=0,lte=65535"`
}

func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	if c.PollInterval >= c.IdleThreshold {
		return fmt.Errorf("POLL_INTERVAL (%s) must be shorter than IDLE_THRESHOLD (%s)", c.PollInterval, c.IdleThreshold)
	}
	return nil
}

// CensoredWordList splits CENSORED_WORDS on commas, dropping blanks.
func (c Config) CensoredWordList() []string {
	words := lo.Map(strings.Split(c.CensoredWords, ","), func(w string, _ int) string {
		return strings.TrimSpace(w)
	})
	return lo.Compact(words)
}

func CharacterRune(str string) (rune, error) {
	r := []rune(str)
	if len(r) != 1 {
		return 0, fmt.Errorf(
			"CENSOR_CHARACTER must be a single character, got %q",
			str,
		)
	}
	return r[0], nil
}
