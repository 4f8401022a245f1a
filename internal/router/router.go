package router

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	apperrors "assistant-agents/internal/common/errors"
	"assistant-agents/internal/common/logger"
	"assistant-agents/internal/common/metrics"
)

// Collaborator performs a capability's effect: a remote agent process or
// a direct data-access service. Treated as a black box by the router.
type Collaborator interface {
	Execute(ctx context.Context, capability Capability, args Arguments) (string, error)
}

// Router routes one utterance at a time. It holds no cross-request state;
// everything mutable lives in the collaborators.
type Router struct {
	collaborators map[Domain]Collaborator
	defaultUserID string
	callTimeout   time.Duration
	now           func() time.Time
	logger        logger.Logger
}

type Option func(*Router)

// WithClock fixes the clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(r *Router) { r.now = now }
}

// WithCallTimeout bounds each collaborator call.
func WithCallTimeout(d time.Duration) Option {
	return func(r *Router) { r.callTimeout = d }
}

func New(collaborators map[Domain]Collaborator, defaultUserID string, log logger.Logger, opts ...Option) *Router {
	r := &Router{
		collaborators: collaborators,
		defaultUserID: defaultUserID,
		callTimeout:   15 * time.Second,
		now:           time.Now,
		logger:        log.WithFields(map[string]interface{}{"component": "router"}),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Decide classifies an utterance and extracts arguments without
// dispatching. Deterministic: the same utterance always yields the same
// decision (given a fixed clock).
func (r *Router) Decide(utterance string) Decision {
	domains := ClassifyDomains(utterance)
	if len(domains) == 0 {
		return Decision{Outcome: OutcomeNoMatch}
	}

	now := r.now()
	lower := strings.ToLower(utterance)
	in := classifyIntent(lower)

	decision := Decision{Outcome: OutcomeDispatched}
	for _, d := range domains {
		capability := pickCapability(d, in, lower)
		args := ExtractArguments(capability, utterance, r.defaultUserID, now)

		if field := MissingRequired(capability, args); field != "" {
			return Decision{
				Outcome:           OutcomeMissingArgument,
				MissingField:      field,
				MissingCapability: capability,
			}
		}

		decision.Matches = append(decision.Matches, Match{
			Domain:     d,
			Capability: capability,
			Args:       args,
		})
	}

	return decision
}

// domainResult is one collaborator's slot in the composed response.
type domainResult struct {
	domain Domain
	text   string
}

// RouteAndExecute is the router's public contract. It never fails
// outright: classification misses become help text, missing arguments
// become clarification requests, and collaborator failures become inline
// error strings in that domain's result slot.
func (r *Router) RouteAndExecute(ctx context.Context, utterance string) string {
	start := time.Now()
	decision := r.Decide(utterance)

	switch decision.Outcome {
	case OutcomeNoMatch:
		miss := apperrors.NewClassificationMiss(utterance)
		r.logger.Info("no capability matched", map[string]interface{}{
			"code":      string(miss.Code),
			"utterance": utterance,
		})
		metrics.QueriesRouted.WithLabelValues(string(OutcomeNoMatch)).Inc()
		metrics.RoutingDuration.WithLabelValues(string(OutcomeNoMatch)).Observe(time.Since(start).Seconds())
		return helpText()

	case OutcomeMissingArgument:
		miss := apperrors.NewMissingRequiredArgument(decision.MissingField)
		r.logger.Info("required argument missing", map[string]interface{}{
			"capability": decision.MissingCapability,
			"field":      decision.MissingField,
			"code":       string(miss.Code),
		})
		metrics.QueriesRouted.WithLabelValues(string(OutcomeMissingArgument)).Inc()
		metrics.RoutingDuration.WithLabelValues(string(OutcomeMissingArgument)).Observe(time.Since(start).Seconds())
		return clarificationText(decision.MissingCapability, decision.MissingField)
	}

	results := r.dispatch(ctx, decision.Matches)

	metrics.QueriesRouted.WithLabelValues(string(OutcomeDispatched)).Inc()
	metrics.RoutingDuration.WithLabelValues(string(OutcomeDispatched)).Observe(time.Since(start).Seconds())

	return compose(results)
}

// dispatch runs each matched capability against its collaborator. Calls
// are independent, so multi-domain decisions fan out concurrently; slots
// keep matched order regardless of completion order.
func (r *Router) dispatch(ctx context.Context, matches []Match) []domainResult {
	results := make([]domainResult, len(matches))

	var wg sync.WaitGroup
	for i, m := range matches {
		wg.Add(1)
		go func(i int, m Match) {
			defer wg.Done()
			results[i] = domainResult{domain: m.Domain, text: r.callCollaborator(ctx, m)}
		}(i, m)
	}
	wg.Wait()

	return results
}

func (r *Router) callCollaborator(ctx context.Context, m Match) string {
	collab, ok := r.collaborators[m.Domain]
	if !ok {
		metrics.DomainDispatches.WithLabelValues(string(m.Domain), "unbound").Inc()
		return fmt.Sprintf("%s is not available right now.", m.Domain.Label())
	}

	callCtx, cancel := context.WithTimeout(ctx, r.callTimeout)
	defer cancel()

	r.logger.Info("dispatching capability", map[string]interface{}{
		"domain":     m.Domain,
		"capability": m.Capability,
		"userId":     m.Args.UserID,
	})

	text, err := collab.Execute(callCtx, m.Capability, m.Args)
	if err != nil {
		stdErr := apperrors.NewCollaboratorUnavailable(string(m.Domain), err)
		r.logger.Error("collaborator call failed", map[string]interface{}{
			"domain":     m.Domain,
			"capability": m.Capability,
			"code":       string(stdErr.Code),
			"retryable":  stdErr.Retryable,
			"error":      err.Error(),
		})
		metrics.DomainDispatches.WithLabelValues(string(m.Domain), "error").Inc()
		return fmt.Sprintf("Unable to contact %s: %s", m.Domain.Label(), err.Error())
	}

	metrics.DomainDispatches.WithLabelValues(string(m.Domain), "ok").Inc()
	return text
}
