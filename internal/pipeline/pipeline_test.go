package pipeline

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/filmrehberi/filmrehberi/internal/config"
	"github.com/filmrehberi/filmrehberi/internal/llm"
	"github.com/filmrehberi/filmrehberi/internal/vectordb"
)

// scriptedProvider returns queued responses in call order. When the script
// is exhausted the last step repeats, which keeps repeat-call tests simple.
type scriptedProvider struct {
	mu    sync.Mutex
	steps []scriptStep
	calls []llm.CompletionRequest
}

type scriptStep struct {
	content string
	err     error
}

func newScriptedProvider(steps ...scriptStep) *scriptedProvider {
	return &scriptedProvider{steps: steps}
}

func (s *scriptedProvider) Name() string { return "scripted" }

func (s *scriptedProvider) Complete(_ context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := len(s.calls)
	s.calls = append(s.calls, req)
	if idx >= len(s.steps) {
		idx = len(s.steps) - 1
	}
	step := s.steps[idx]
	if step.err != nil {
		return nil, step.err
	}
	return &llm.CompletionResponse{Content: step.content}, nil
}

func (s *scriptedProvider) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

// stubStore is a VectorStore returning canned results.
type stubStore struct {
	results     []vectordb.SearchResult
	err         error
	searchCalls int
	lastQuery   string
	lastLimit   int
}

func (s *stubStore) AddDocuments(context.Context, []vectordb.Document) error { return nil }

func (s *stubStore) Search(_ context.Context, query string, limit int, _ *vectordb.SearchFilter) ([]vectordb.SearchResult, error) {
	s.searchCalls++
	s.lastQuery = query
	s.lastLimit = limit
	if s.err != nil {
		return nil, s.err
	}
	return s.results, nil
}

func (s *stubStore) Persist(context.Context, string) error { return nil }
func (s *stubStore) Load(context.Context, string) error    { return nil }
func (s *stubStore) Count() int                            { return len(s.results) }

func avatarResults() []vectordb.SearchResult {
	return []vectordb.SearchResult{
		{
			Document: vectordb.Document{
				ID:      "desc:Avatar:0",
				Content: "Pandora gezegeninde geçen destansı bir bilim kurgu macerası.",
				Metadata: vectordb.DocumentMetadata{
					Name:      "Avatar",
					Genre:     "Bilim Kurgu",
					Directors: "James Cameron",
					Rating:    "8.1",
					Type:      vectordb.DocTypeDesc,
				},
			},
			Similarity: 0.93,
		},
		{
			Document: vectordb.Document{
				ID:      "review:Avatar:0:0",
				Content: "Görsel şölen, mutlaka izleyin.",
				Metadata: vectordb.DocumentMetadata{
					Name:       "Avatar",
					Type:       vectordb.DocTypeReview,
					UserRating: "9",
				},
			},
			Similarity: 0.88,
		},
	}
}

func newTestPipeline(provider llm.Provider, store vectordb.VectorStore) *Pipeline {
	return New(provider, store, config.DefaultConfig())
}

// --- Classifier ---

func TestClassifyFilmQuery(t *testing.T) {
	provider := newScriptedProvider(scriptStep{content: `{"intent": "film_query"}`})
	p := newTestPipeline(provider, &stubStore{})

	intent, err := p.Classify(context.Background(), "Avatar filmi nasıldı?")
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if intent != IntentFilmQuery {
		t.Errorf("expected film_query, got %q", intent)
	}

	// JSON mode must be requested so the response is guaranteed parseable.
	if !provider.calls[0].JSONMode {
		t.Error("expected classifier request in JSON mode")
	}
	if provider.calls[0].Temperature != 0 {
		t.Errorf("expected deterministic classification, got temperature %v", provider.calls[0].Temperature)
	}
}

func TestClassifyGeneralChat(t *testing.T) {
	provider := newScriptedProvider(scriptStep{content: `{"intent": "general_chat"}`})
	p := newTestPipeline(provider, &stubStore{})

	intent, err := p.Classify(context.Background(), "Merhaba nasılsın?")
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if intent != IntentGeneralChat {
		t.Errorf("expected general_chat, got %q", intent)
	}
}

func TestClassifyRejectsNonConformantResponses(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"free text", "Bu bir film sorusu gibi görünüyor."},
		{"unknown label", `{"intent": "movie_stuff"}`},
		{"empty object", `{}`},
		{"wrong shape", `["film_query"]`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			provider := newScriptedProvider(scriptStep{content: tc.content})
			p := newTestPipeline(provider, &stubStore{})

			_, err := p.Classify(context.Background(), "bir mesaj")
			if !errors.Is(err, ErrBadIntent) {
				t.Errorf("expected ErrBadIntent, got %v", err)
			}
		})
	}
}

func TestClassifyPropagatesCompletionFailure(t *testing.T) {
	provider := newScriptedProvider(scriptStep{err: errors.New("service down")})
	p := newTestPipeline(provider, &stubStore{})

	_, err := p.Classify(context.Background(), "Avatar")
	if err == nil {
		t.Fatal("expected error")
	}
	if errors.Is(err, ErrBadIntent) {
		t.Error("a transport failure is not a schema violation")
	}
}

// --- Context assembly ---

func TestBuildContextNotFound(t *testing.T) {
	if got := BuildContext(nil); got != NotFoundContext {
		t.Errorf("expected not-found context, got %q", got)
	}
}

func TestBuildContextDeduplicatesNameTypePairs(t *testing.T) {
	results := append(avatarResults(), avatarResults()...) // every pair twice

	ctxText := BuildContext(results)

	if got := strings.Count(ctxText, "[Film: Avatar]"); got != 2 {
		t.Errorf("expected 2 blocks for the 2 distinct (name, type) pairs, got %d", got)
	}
}

func TestBuildContextBlockFormat(t *testing.T) {
	ctxText := BuildContext(avatarResults())

	for _, want := range []string{
		"[Film: Avatar]",
		"Tür: Bilim Kurgu",
		"Yönetmen: James Cameron",
		"Puan: 8.1",
		"Açıklama:",
		"Kullanıcı Yorumu:",
		"Pandora gezegeninde",
	} {
		if !strings.Contains(ctxText, want) {
			t.Errorf("context missing %q:\n%s", want, ctxText)
		}
	}
}

func TestBuildContextDefaultsForMissingMetadata(t *testing.T) {
	results := []vectordb.SearchResult{
		{Document: vectordb.Document{ID: "x", Content: "bir içerik"}},
	}

	ctxText := BuildContext(results)

	for _, want := range []string{
		"[Film: Bilinmeyen Film]",
		"Tür: Belirtilmemiş",
		"Yönetmen: Belirtilmemiş",
		"Puan: Puanlanmamış",
		"Kullanıcı Yorumu:", // non-desc types label as review
	} {
		if !strings.Contains(ctxText, want) {
			t.Errorf("context missing %q:\n%s", want, ctxText)
		}
	}
}

func TestBuildContextPreservesRetrievalOrder(t *testing.T) {
	results := avatarResults()
	ctxText := BuildContext(results)

	descIdx := strings.Index(ctxText, "Açıklama:")
	reviewIdx := strings.Index(ctxText, "Kullanıcı Yorumu:")
	if descIdx < 0 || reviewIdx < 0 || descIdx > reviewIdx {
		t.Errorf("blocks not in retrieval order:\n%s", ctxText)
	}
}

// --- Orchestrator ---

func TestRunFilmQueryBranch(t *testing.T) {
	provider := newScriptedProvider(
		scriptStep{content: `{"intent": "film_query"}`},
		scriptStep{content: "Avatar, Pandora'da geçen görsel açıdan çığır açmış bir bilim kurgu filmidir."},
	)
	store := &stubStore{results: avatarResults()}
	p := newTestPipeline(provider, store)

	st, err := p.Run(context.Background(), NewState("Avatar filmi nasıldı?"))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if st.Intent != IntentFilmQuery {
		t.Errorf("expected film_query intent, got %q", st.Intent)
	}
	if store.searchCalls != 1 {
		t.Errorf("expected 1 retrieval call, got %d", store.searchCalls)
	}
	if store.lastLimit != 6 {
		t.Errorf("expected top-k 6, got %d", store.lastLimit)
	}
	if len(st.RetrievedDocs) != 2 {
		t.Errorf("expected retrieved docs on state, got %d", len(st.RetrievedDocs))
	}
	if !strings.Contains(st.Context, "Avatar") {
		t.Errorf("expected Avatar in context, got:\n%s", st.Context)
	}
	if st.Answer == "" {
		t.Error("expected a non-empty answer")
	}
	if st.Generation != st.Answer {
		t.Errorf("generation %q should mirror answer %q", st.Generation, st.Answer)
	}
	// The original message survives every stage untouched.
	if st.Message != "Avatar filmi nasıldı?" {
		t.Errorf("message mutated to %q", st.Message)
	}
}

func TestRunGeneralChatBranchSkipsRetrieval(t *testing.T) {
	provider := newScriptedProvider(
		scriptStep{content: `{"intent": "general_chat"}`},
		scriptStep{content: "Merhaba! Bugün sana hangi filmler konusunda yardımcı olabilirim?"},
	)
	store := &stubStore{results: avatarResults()}
	p := newTestPipeline(provider, store)

	st, err := p.Run(context.Background(), NewState("Merhaba nasılsın?"))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if st.Intent != IntentGeneralChat {
		t.Errorf("expected general_chat intent, got %q", st.Intent)
	}
	if store.searchCalls != 0 {
		t.Errorf("general chat must not hit the store, got %d calls", store.searchCalls)
	}
	if st.Answer == "" {
		t.Error("expected a greeting-style answer")
	}
	if st.Context != "" || len(st.RetrievedDocs) != 0 {
		t.Error("general chat must not set retrieval fields")
	}
}

func TestRunUnknownFilmProducesNotFoundContext(t *testing.T) {
	provider := newScriptedProvider(
		scriptStep{content: `{"intent": "film_query"}`},
		scriptStep{content: "Bu film hakkında bilgi bulunamadı."},
	)
	store := &stubStore{} // zero results
	p := newTestPipeline(provider, store)

	st, err := p.Run(context.Background(), NewState("Bilmediğim bir film XYZ123 hakkında bilgi var mı?"))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if st.Context != NotFoundContext {
		t.Errorf("expected fixed not-found context, got %q", st.Context)
	}
	if len(st.RetrievedDocs) != 0 {
		t.Errorf("expected no retrieved docs, got %d", len(st.RetrievedDocs))
	}
	if st.Answer == "" {
		t.Error("expected a polite no-information answer")
	}

	// The generator saw the fallback context rather than an empty string.
	genPrompt := provider.calls[1].Messages[0].Content
	if !strings.Contains(genPrompt, NotFoundContext) {
		t.Errorf("expected fallback context in generation prompt:\n%s", genPrompt)
	}
}

func TestRunRecoversGroundedGenerationFailure(t *testing.T) {
	provider := newScriptedProvider(
		scriptStep{content: `{"intent": "film_query"}`},
		scriptStep{err: errors.New("429 too many requests")},
	)
	store := &stubStore{results: avatarResults()}
	p := newTestPipeline(provider, store)

	st, err := p.Run(context.Background(), NewState("Avatar filmi nasıldı?"))
	if err != nil {
		t.Fatalf("pipeline must reach its terminal state, got error: %v", err)
	}

	if !strings.HasPrefix(st.Answer, "Bir hata oluştu:") {
		t.Errorf("expected degraded answer with error prefix, got %q", st.Answer)
	}
	if !strings.Contains(st.Answer, "429") {
		t.Errorf("expected embedded error detail, got %q", st.Answer)
	}
	if st.Generation != "" {
		t.Errorf("expected empty generation after recovery, got %q", st.Generation)
	}
}

func TestRunPropagatesGeneralChatFailure(t *testing.T) {
	provider := newScriptedProvider(
		scriptStep{content: `{"intent": "general_chat"}`},
		scriptStep{err: errors.New("service down")},
	)
	p := newTestPipeline(provider, &stubStore{})

	_, err := p.Run(context.Background(), NewState("Merhaba"))
	if err == nil {
		t.Fatal("general chat failures propagate; expected error")
	}
}

func TestRunPropagatesRetrievalFailure(t *testing.T) {
	provider := newScriptedProvider(scriptStep{content: `{"intent": "film_query"}`})
	store := &stubStore{err: errors.New("index unavailable")}
	p := newTestPipeline(provider, store)

	_, err := p.Run(context.Background(), NewState("Avatar"))
	if err == nil {
		t.Fatal("store errors are distinct from zero results; expected error")
	}
	if !strings.Contains(err.Error(), "index unavailable") {
		t.Errorf("expected wrapped store error, got %v", err)
	}
}

func TestRunPropagatesClassificationFailure(t *testing.T) {
	provider := newScriptedProvider(scriptStep{content: "düz metin"})
	store := &stubStore{}
	p := newTestPipeline(provider, store)

	_, err := p.Run(context.Background(), NewState("Avatar"))
	if !errors.Is(err, ErrBadIntent) {
		t.Errorf("expected ErrBadIntent, got %v", err)
	}
	if store.searchCalls != 0 {
		t.Error("no branch may run without a valid intent")
	}
}

func TestGenerateRepeatCallsStayStable(t *testing.T) {
	provider := newScriptedProvider(scriptStep{content: "Avatar hakkında kısa bir değerlendirme."})
	p := newTestPipeline(provider, &stubStore{})

	base := NewState("Avatar filmi nasıldı?")
	base.Context = BuildContext(avatarResults())

	first, err := p.generate(context.Background(), base)
	if err != nil {
		t.Fatalf("first generate: %v", err)
	}
	second, err := p.generate(context.Background(), base)
	if err != nil {
		t.Fatalf("second generate: %v", err)
	}

	if first.Answer == "" || second.Answer == "" {
		t.Error("repeat calls with unchanged inputs must both produce answers")
	}
	if provider.callCount() != 2 {
		t.Errorf("expected 2 completion calls, got %d", provider.callCount())
	}
}

func TestRetrieveTrimsQuery(t *testing.T) {
	provider := newScriptedProvider(scriptStep{content: `{"intent": "film_query"}`}, scriptStep{content: "cevap"})
	store := &stubStore{results: avatarResults()}
	p := newTestPipeline(provider, store)

	if _, err := p.Run(context.Background(), NewState("  Avatar filmi nasıldı?  ")); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if store.lastQuery != "Avatar filmi nasıldı?" {
		t.Errorf("expected trimmed query, got %q", store.lastQuery)
	}
}

// --- State ---

func TestNewStateAllocatesIndependentHistory(t *testing.T) {
	a := NewState("ilk")
	b := NewState("ikinci")

	a.History = append(a.History, Turn{Role: "user", Content: "ilk"})
	if len(b.History) != 0 {
		t.Error("states must not share a history slice")
	}
}

func TestNewStateWithHistoryCopies(t *testing.T) {
	history := []Turn{{Role: "user", Content: "önceki soru"}}
	st := NewStateWithHistory("yeni soru", history)

	history[0].Content = "değişti"
	if st.History[0].Content != "önceki soru" {
		t.Error("state history must not alias caller memory")
	}
}

func TestFinalTextFallbacks(t *testing.T) {
	st := State{Answer: "cevap", Context: "bağlam"}
	if got := st.FinalText(); got != "cevap" {
		t.Errorf("expected answer, got %q", got)
	}

	st = State{Context: "bağlam"}
	if got := st.FinalText(); got != "bağlam" {
		t.Errorf("expected context fallback, got %q", got)
	}

	st = State{}
	if got := st.FinalText(); got != NoAnswerMessage {
		t.Errorf("expected no-answer message, got %q", got)
	}
}
