package dialog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"testing"

	"ai-legalaid-be/pkg/legal"
	"ai-legalaid-be/pkg/llm"
	"ai-legalaid-be/pkg/store"

	"github.com/stretchr/testify/require"
)

type providerCall struct {
	history []llm.Message
	opts    llm.Options
}

// fakeProvider scripts gateway replies and records every call so tests can
// assert on prompts and generation parameters.
type fakeProvider struct {
	err     error
	replies []string
	calls   []providerCall
}

func (p *fakeProvider) Chat(_ context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	var opts llm.Options
	for _, o := range options {
		o(&opts)
	}
	p.calls = append(p.calls, providerCall{history: history, opts: opts})

	if p.err != nil {
		return "", p.err
	}
	if len(p.replies) > 0 {
		reply := p.replies[0]
		p.replies = p.replies[1:]
		return reply, nil
	}
	return fmt.Sprintf("generated-%d", len(p.calls)), nil
}

func (p *fakeProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, options...)
}

func (p *fakeProvider) lastCall() providerCall {
	return p.calls[len(p.calls)-1]
}

type mapRepo struct {
	sessions map[string]*store.Session
}

func newMapRepo() *mapRepo {
	return &mapRepo{sessions: make(map[string]*store.Session)}
}

func (r *mapRepo) Get(id string) (*store.Session, bool) {
	s, ok := r.sessions[id]
	return s, ok
}

func (r *mapRepo) Save(s *store.Session) { r.sessions[s.ID] = s }
func (r *mapRepo) Delete(id string) { delete(r.sessions, id) }

func newTestMachine(provider llm.LLMProvider) (*Machine, *mapRepo) {
	repo := newMapRepo()
	return NewMachine(repo, provider, log.New(io.Discard, "", 0)), repo
}

func TestIntakeClassifiesAndAsksFirstQuestion(t *testing.T) {
	provider := &fakeProvider{replies: []string{"I am sorry that happened."}}
	machine, repo := newTestMachine(provider)

	res, err := machine.HandleMessage(context.Background(), "s1", "I was stalked and harassed at work")
	require.NoError(t, err)

	require.Equal(t, "I am sorry that happened.\n\n"+DetailQuestions[0], res.Reply)
	require.Empty(t, res.LegalSummary)
	require.False(t, res.Degraded)

	session, found := repo.Get("s1")
	require.True(t, found)
	require.Equal(t, store.StageCollectingDetails, session.Stage)
	require.Equal(t, legal.CategoryHarassment, session.Category)
	require.Len(t, session.Turns, 2)
	require.Equal(t, store.RoleUser, session.Turns[0].Role)
	require.Equal(t, store.RoleAssistant, session.Turns[1].Role)
	require.Equal(t, res.Reply, session.Turns[1].Content)

	// Intake acknowledgment names the category in the system preamble.
	require.Contains(t, provider.lastCall().history[0].Content, "HARASSMENT")
	require.Equal(t, 256, provider.lastCall().opts.MaxTokens)
}

func TestIntermediateAnswersEchoNextQuestionWithoutGateway(t *testing.T) {
	provider := &fakeProvider{}
	machine, repo := newTestMachine(provider)

	_, err := machine.HandleMessage(context.Background(), "s1", "my phone was stolen")
	require.NoError(t, err)
	callsAfterIntake := len(provider.calls)

	for i := 1; i < len(DetailQuestions); i++ {
		res, err := machine.HandleMessage(context.Background(), "s1", fmt.Sprintf("answer %d", i))
		require.NoError(t, err)
		require.Equal(t, DetailQuestions[i], res.Reply)
	}

	require.Len(t, provider.calls, callsAfterIntake, "fixed questions must not call the gateway")

	session, _ := repo.Get("s1")
	require.Equal(t, store.StageCollectingDetails, session.Stage)
	require.Equal(t, len(DetailQuestions)-1, session.DetailIndex)
	require.Len(t, session.CollectedDetails, len(DetailQuestions)-1)
}

func TestFinalAnswerProducesAdviceAndSummary(t *testing.T) {
	provider := &fakeProvider{}
	machine, repo := newTestMachine(provider)

	_, err := machine.HandleMessage(context.Background(), "s1", "I was stalked and harassed at work")
	require.NoError(t, err)
	for i := 1; i < len(DetailQuestions); i++ {
		_, err := machine.HandleMessage(context.Background(), "s1", fmt.Sprintf("answer %d", i))
		require.NoError(t, err)
	}

	provider.replies = []string{"Here is what you can do."}
	res, err := machine.HandleMessage(context.Background(), "s1", "final answer")
	require.NoError(t, err)

	require.Equal(t, "Here is what you can do.\n\n"+CaseHistoryOffer, res.Reply)
	require.Contains(t, res.LegalSummary, "354")
	require.Contains(t, res.LegalSummary, "509")

	session, _ := repo.Get("s1")
	require.Equal(t, store.StageAdvised, session.Stage)
	require.True(t, session.AdviceGiven)
	require.True(t, session.AwaitingCaseChoice)
	require.Len(t, session.CollectedDetails, len(DetailQuestions))

	// Advice prompt carries every collected detail including the last answer.
	preamble := provider.lastCall().history[0].Content
	require.Contains(t, preamble, "final answer")
	require.Contains(t, preamble, "answer 1")
	require.Equal(t, 512, provider.lastCall().opts.MaxTokens)
}

func TestCaseHistoryAccepted(t *testing.T) {
	provider := &fakeProvider{}
	machine, repo := newTestMachine(provider)
	runToAdvised(t, machine, "I was stalked and harassed at work")

	provider.replies = []string{"Case one. Case two."}
	res, err := machine.HandleMessage(context.Background(), "s1", "yes please")
	require.NoError(t, err)
	require.Equal(t, "Case one. Case two.", res.Reply)

	require.Contains(t, provider.lastCall().history[0].Content, "HARASSMENT")
	require.Equal(t, 640, provider.lastCall().opts.MaxTokens)

	session, _ := repo.Get("s1")
	require.False(t, session.AwaitingCaseChoice)
}

func TestCaseHistoryDeclined(t *testing.T) {
	provider := &fakeProvider{}
	machine, repo := newTestMachine(provider)
	runToAdvised(t, machine, "I was stalked and harassed at work")
	callsBefore := len(provider.calls)

	res, err := machine.HandleMessage(context.Background(), "s1", "no thanks")
	require.NoError(t, err)
	require.Equal(t, ContinueReply, res.Reply)
	require.Len(t, provider.calls, callsBefore, "declining must not call the gateway")

	session, _ := repo.Get("s1")
	require.False(t, session.AwaitingCaseChoice)
	require.Equal(t, store.StageAdvised, session.Stage)
}

func TestAdvisedContinuation(t *testing.T) {
	provider := &fakeProvider{}
	machine, _ := newTestMachine(provider)
	runToAdvised(t, machine, "I was stalked and harassed at work")

	_, err := machine.HandleMessage(context.Background(), "s1", "no thanks")
	require.NoError(t, err)

	provider.replies = []string{"You could also consult a lawyer."}
	res, err := machine.HandleMessage(context.Background(), "s1", "what about a lawyer?")
	require.NoError(t, err)
	require.Equal(t, "You could also consult a lawyer.", res.Reply)
	require.Equal(t, 320, provider.lastCall().opts.MaxTokens)
}

func TestGatewayFailureLeavesSessionUntouched(t *testing.T) {
	provider := &fakeProvider{err: errors.New("gateway down")}
	machine, repo := newTestMachine(provider)

	res, err := machine.HandleMessage(context.Background(), "s1", "I was stalked and harassed at work")
	require.NoError(t, err)
	require.True(t, res.Degraded)
	require.Equal(t, DegradedReply, res.Reply)

	_, found := repo.Get("s1")
	require.False(t, found, "a failed intake must not create a session")

	// Same message retried after the gateway recovers.
	provider.err = nil
	provider.replies = []string{"I am sorry that happened."}
	res, err = machine.HandleMessage(context.Background(), "s1", "I was stalked and harassed at work")
	require.NoError(t, err)
	require.False(t, res.Degraded)

	session, found := repo.Get("s1")
	require.True(t, found)
	require.Equal(t, store.StageCollectingDetails, session.Stage)
}

func TestCaseHistoryFailureKeepsChoicePending(t *testing.T) {
	provider := &fakeProvider{}
	machine, repo := newTestMachine(provider)
	runToAdvised(t, machine, "I was stalked and harassed at work")

	provider.err = errors.New("gateway down")
	res, err := machine.HandleMessage(context.Background(), "s1", "yes please")
	require.NoError(t, err)
	require.True(t, res.Degraded)

	session, _ := repo.Get("s1")
	require.True(t, session.AwaitingCaseChoice, "failed case-history call must keep the offer open")

	provider.err = nil
	provider.replies = []string{"Case one."}
	res, err = machine.HandleMessage(context.Background(), "s1", "yes please")
	require.NoError(t, err)
	require.Equal(t, "Case one.", res.Reply)
}

func TestTranscriptGrowsWithEveryExchange(t *testing.T) {
	provider := &fakeProvider{}
	machine, repo := newTestMachine(provider)

	messages := []string{"I was stalked and harassed at work"}
	for i := 1; i <= len(DetailQuestions); i++ {
		messages = append(messages, fmt.Sprintf("answer %d", i))
	}

	for i, msg := range messages {
		_, err := machine.HandleMessage(context.Background(), "s1", msg)
		require.NoError(t, err)

		session, _ := repo.Get("s1")
		require.Len(t, session.Turns, (i+1)*2)
	}

	// Later generation calls see the full transcript.
	last := provider.lastCall()
	var sawFirstQuestion bool
	for _, m := range last.history {
		if strings.Contains(m.Content, DetailQuestions[0]) {
			sawFirstQuestion = true
		}
	}
	require.True(t, sawFirstQuestion, "gateway history should include earlier fixed questions")
}

// runToAdvised drives session "s1" through intake and all detail questions.
func runToAdvised(t *testing.T, machine *Machine, opening string) {
	t.Helper()

	_, err := machine.HandleMessage(context.Background(), "s1", opening)
	require.NoError(t, err)
	for i := 1; i <= len(DetailQuestions); i++ {
		_, err := machine.HandleMessage(context.Background(), "s1", fmt.Sprintf("answer %d", i))
		require.NoError(t, err)
	}
}
