package dialog

import (
	"context"
	"log"
	"time"

	"ai-legalaid-be/pkg/legal"
	"ai-legalaid-be/pkg/llm"
	"ai-legalaid-be/pkg/store"
)

// Per-branch generation parameters. The advice and case-history branches get
// larger token budgets than routine continuation.
const (
	ackMaxTokens        = 256
	ackTemperature      = 0.7
	adviceMaxTokens     = 512
	adviceTemperature   = 0.6
	caseMaxTokens       = 640
	caseTemperature     = 0.7
	continueMaxTokens   = 320
	continueTemperature = 0.7
)

// Result is the stage machine's reply payload for one message.
type Result struct {
	Reply        string
	LegalSummary string // present only on the turn that completes detail collection
	Degraded     bool   // generation gateway exhausted its retries
	Stage        string // session stage after this message
	Category     string // issue category, empty until classified
}

// Machine drives the per-session conversation stages. All session mutations
// happen here, after any gateway call succeeds, so a failed call leaves the
// session untouched and the same message can simply be retried.
type Machine struct {
	sessions store.SessionRepository
	provider llm.LLMProvider
	locks    *sessionLocker
	logger   *log.Logger
}

func NewMachine(sessions store.SessionRepository, provider llm.LLMProvider, logger *log.Logger) *Machine {
	return &Machine{
		sessions: sessions,
		provider: provider,
		locks:    newSessionLocker(),
		logger:   logger,
	}
}

// HandleMessage processes one incoming message under the session's lock.
func (m *Machine) HandleMessage(ctx context.Context, sessionID, message string) (*Result, error) {
	unlock := m.locks.Acquire(sessionID)
	defer unlock()

	session, found := m.sessions.Get(sessionID)
	if !found {
		session = store.NewSession(sessionID)
	}

	now := time.Now()

	switch session.Stage {
	case store.StageIntake:
		return m.handleIntake(ctx, session, message, now)
	case store.StageCollectingDetails:
		return m.handleDetails(ctx, session, message, now)
	default:
		return m.handleAdvised(ctx, session, message, now)
	}
}

// handleIntake classifies the issue, generates the empathetic acknowledgment
// and asks the first clarifying question.
func (m *Machine) handleIntake(ctx context.Context, session *store.Session, message string, now time.Time) (*Result, error) {
	category := legal.Classify(message)
	m.logger.Printf("[STAGE] session=%s INTAKE classified as %s", session.ID, category)

	generated, err := m.generate(ctx, session, buildAcknowledgmentPrompt(category), message,
		llm.WithMaxTokens(ackMaxTokens), llm.WithTemperature(ackTemperature))
	if err != nil {
		return m.degrade(session, err)
	}

	reply := generated + "\n\n" + DetailQuestions[0]

	session.Category = category
	session.Stage = store.StageCollectingDetails
	session.DetailIndex = 0
	session.AppendExchange(message, reply, now)
	m.sessions.Save(session)

	return m.result(session, &Result{Reply: reply}), nil
}

// handleDetails records one answer per question. Intermediate answers echo
// the next question verbatim without a generation call; the final answer
// triggers the advice branch and the deterministic legal summary.
func (m *Machine) handleDetails(ctx context.Context, session *store.Session, message string, now time.Time) (*Result, error) {
	lastIndex := len(DetailQuestions) - 1

	if session.DetailIndex < lastIndex {
		session.CollectedDetails = append(session.CollectedDetails, message)
		session.DetailIndex++
		reply := DetailQuestions[session.DetailIndex]
		session.AppendExchange(message, reply, now)
		m.sessions.Save(session)
		return m.result(session, &Result{Reply: reply}), nil
	}

	// Final answer: build the summary-request prompt over every detail,
	// including this one, before mutating the session.
	details := make([]string, len(session.CollectedDetails), len(session.CollectedDetails)+1)
	copy(details, session.CollectedDetails)
	details = append(details, message)

	generated, err := m.generate(ctx, session, buildAdvicePrompt(session.Category, details), message,
		llm.WithMaxTokens(adviceMaxTokens), llm.WithTemperature(adviceTemperature))
	if err != nil {
		return m.degrade(session, err)
	}

	reply := generated + "\n\n" + CaseHistoryOffer
	summary := legal.FormatSummary(session.Category)

	session.CollectedDetails = details
	session.Stage = store.StageAdvised
	session.AdviceGiven = true
	session.AwaitingCaseChoice = true
	session.AppendExchange(message, reply, now)
	m.sessions.Save(session)

	m.logger.Printf("[STAGE] session=%s ADVISED after %d details", session.ID, len(details))
	return m.result(session, &Result{Reply: reply, LegalSummary: summary}), nil
}

// handleAdvised runs the post-advice flow: the one-shot case-history choice,
// then open-ended continuation.
func (m *Machine) handleAdvised(ctx context.Context, session *store.Session, message string, now time.Time) (*Result, error) {
	if session.AwaitingCaseChoice {
		if !IsAffirmative(message) {
			session.AwaitingCaseChoice = false
			session.AppendExchange(message, ContinueReply, now)
			m.sessions.Save(session)
			return m.result(session, &Result{Reply: ContinueReply}), nil
		}

		generated, err := m.generate(ctx, session, buildCaseExamplesPrompt(session.Category), message,
			llm.WithMaxTokens(caseMaxTokens), llm.WithTemperature(caseTemperature))
		if err != nil {
			// Flag stays set so a retry of the same message still works.
			return m.degrade(session, err)
		}

		session.AwaitingCaseChoice = false
		session.AppendExchange(message, generated, now)
		m.sessions.Save(session)
		return m.result(session, &Result{Reply: generated}), nil
	}

	generated, err := m.generate(ctx, session, buildContinuationPrompt(session.Category), message,
		llm.WithMaxTokens(continueMaxTokens), llm.WithTemperature(continueTemperature))
	if err != nil {
		return m.degrade(session, err)
	}

	session.AppendExchange(message, generated, now)
	m.sessions.Save(session)
	return m.result(session, &Result{Reply: generated}), nil
}

// generate sends preamble + full transcript + latest message to the gateway.
func (m *Machine) generate(ctx context.Context, session *store.Session, preamble, message string, opts ...llm.Option) (string, error) {
	history := make([]llm.Message, 0, len(session.Turns)+2)
	history = append(history, llm.Message{Role: "system", Content: preamble})
	for _, t := range session.Turns {
		history = append(history, llm.Message{Role: t.Role, Content: t.Content})
	}
	history = append(history, llm.Message{Role: store.RoleUser, Content: message})

	return m.provider.Chat(ctx, history, opts...)
}

// degrade logs the gateway failure and returns the fixed fallback reply. The
// session is deliberately not saved.
func (m *Machine) degrade(session *store.Session, err error) (*Result, error) {
	m.logger.Printf("[ERROR] session=%s generation gateway failed: %v", session.ID, err)
	return m.result(session, &Result{Reply: DegradedReply, Degraded: true}), nil
}

func (m *Machine) result(session *store.Session, r *Result) *Result {
	r.Stage = session.Stage
	r.Category = session.Category
	return r
}
