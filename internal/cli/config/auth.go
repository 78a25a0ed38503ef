package config

import (
	"math"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"github.com/yndnr/netconf-cli/internal/core/domain"
	"github.com/yndnr/netconf-cli/internal/telemetry/logger"
)

// AuthConfigurer receives authentication settings read from config.xml.
// Settings are forwarded as they are parsed; nothing is stored here.
type AuthConfigurer interface {
	SetPreference(method domain.AuthMethod, priority int)
	SetKeyPair(privatePath, publicPath string)
}

// AuthOptions controls how the authentication section is interpreted.
type AuthOptions struct {
	// StrictPriority rejects priorities that are not base-10 integers
	// instead of reading them as 0.
	StrictPriority bool
	Logger         logger.Logger
}

// AuthSummary describes what ApplyAuthentication forwarded.
type AuthSummary struct {
	Preferences []domain.AuthPreference
	// KeyPair is the last registered pair, the one in effect.
	KeyPair *domain.KeyPair
	// KeyPairs counts registrations, including overwritten ones.
	KeyPairs int
	Skipped  []error
}

// ApplyAuthentication forwards every recognized preference and key path
// found under the <authentication> children of root to cfg, in document
// order. Key pairs are registered unconditionally, so the last <key-path>
// wins.
func ApplyAuthentication(root *etree.Element, cfg AuthConfigurer, opts AuthOptions) AuthSummary {
	log := opts.Logger
	if log == nil {
		log = logger.Discard()
	}

	var summary AuthSummary
	for _, auth := range root.ChildElements() {
		if auth.Tag != authenticationElement {
			continue
		}
		for _, el := range auth.ChildElements() {
			switch el.Tag {
			case prefElement:
				applyPreferences(el, cfg, opts.StrictPriority, log, &summary)
			case keysElement:
				applyKeyPaths(el, cfg, log, &summary)
			}
		}
	}
	return summary
}

func applyPreferences(pref *etree.Element, cfg AuthConfigurer, strict bool, log logger.Logger, summary *AuthSummary) {
	for _, el := range pref.ChildElements() {
		method, ok := domain.ParseAuthMethod(el.Tag)
		if !ok {
			log.Debug("ignoring unknown authentication method", "method", el.Tag)
			continue
		}

		text := textContent(el)
		priority := ParsePriority(text)
		if strict {
			p, err := strconv.Atoi(strings.TrimSpace(text))
			if err != nil {
				skipErr := domain.ErrPriorityInvalid.WithDetails(method.String() + "=" + strconv.Quote(text))
				log.Warn("skipping authentication preference", "code", skipErr.Code, "method", method.String(), "value", text)
				summary.Skipped = append(summary.Skipped, skipErr)
				continue
			}
			priority = p
		}

		cfg.SetPreference(method, priority)
		summary.Preferences = append(summary.Preferences, domain.AuthPreference{Method: method, Priority: priority})
		log.Debug("authentication preference set", "method", method.String(), "priority", priority)
	}
}

func applyKeyPaths(keys *etree.Element, cfg AuthConfigurer, log logger.Logger, summary *AuthSummary) {
	for _, el := range keys.ChildElements() {
		if el.Tag != keyPathElement {
			continue
		}

		pair, err := domain.NewKeyPair(textContent(el))
		if err != nil {
			log.Warn("skipping key path", "code", domain.GetErrorCode(err), "error", err)
			summary.Skipped = append(summary.Skipped, err)
			continue
		}

		cfg.SetKeyPair(pair.PrivatePath, pair.PublicPath)
		summary.KeyPair = &pair
		summary.KeyPairs++
		log.Debug("key pair registered", "private_path", pair.PrivatePath, "public_path", pair.PublicPath)
	}
}

// ParsePriority reads a priority the way C atoi does: leading whitespace
// and an optional sign are accepted, parsing stops at the first non-digit,
// and text without leading digits is 0. Values are clamped to 32 bits.
func ParsePriority(text string) int {
	s := strings.TrimLeft(text, " \t\n\v\f\r")

	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}

	var n int64
	for i := 0; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		n = n*10 + int64(s[i]-'0')
		if n > math.MaxInt32+1 {
			n = math.MaxInt32 + 1
			break
		}
	}

	if neg {
		n = -n
	}
	if n > math.MaxInt32 {
		n = math.MaxInt32
	}
	return int(n)
}
