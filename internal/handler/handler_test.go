package handler

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/Sakemo/matchmake-bot/internal/bot"
	"github.com/Sakemo/matchmake-bot/internal/model"
	"github.com/Sakemo/matchmake-bot/internal/repository/sqlite"
	"github.com/Sakemo/matchmake-bot/internal/service"
	"github.com/Sakemo/matchmake-bot/internal/session"
)

// ============================================================================
// Test Harness
// ============================================================================

type fakeDirectory struct {
	members map[string]*model.Member
}

func (d *fakeDirectory) Member(ctx context.Context, guildID, userID string) (*model.Member, error) {
	return d.members[userID], nil
}

type fakeNotifier struct {
	mu         sync.Mutex
	recipients []string
}

func (n *fakeNotifier) NotifyMatch(ctx context.Context, recipientID, originID, candidateID string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.recipients = append(n.recipients, recipientID)
	return nil
}

type harness struct {
	responder *Responder
	directory *fakeDirectory
	notifier  *fakeNotifier
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	ctx := context.Background()

	store, err := sqlite.Open(ctx, filepath.Join(t.TempDir(), "bot.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	log := zaptest.NewLogger(t)
	h := &harness{
		directory: &fakeDirectory{members: map[string]*model.Member{}},
		notifier:  &fakeNotifier{},
	}

	questionnaire := service.NewQuestionnaireService(service.QuestionnaireServiceConfig{Repo: store.Questions()})
	locks := service.NewKeyedMutex()
	answers := service.NewAnswerService(service.AnswerServiceConfig{
		Answers: store.Answers(), Questions: store.Questions(), Locks: locks,
	})
	personality := service.NewPersonalityService(service.PersonalityServiceConfig{Repo: store.Personality(), Locks: locks})
	roles := service.NewRoleCatalogService(service.RoleCatalogServiceConfig{
		Compatibility: store.RoleCompatibility(), Tags: store.RoleTags(),
	})
	profiles := service.NewProfileService(service.ProfileServiceConfig{
		Answers: store.Answers(), Personality: store.Personality(), Roles: roles,
	})
	matchmaking := service.NewMatchmakingService(service.MatchmakingServiceConfig{
		Answers:     store.Answers(),
		Personality: store.Personality(),
		Questions:   store.Questions(),
		Roles:       roles,
		Members:     h.directory,
		Sessions:    session.NewMemoryStore(session.MemoryConfig{TTL: time.Minute}),
		Notifier:    h.notifier,
		Logger:      log,
		NewID:       func() string { return "s1" },
	})

	router := bot.NewRouter(log)
	require.NoError(t, Register(router,
		NewQuestionnaireHandler(QuestionnaireHandlerConfig{QuestionnaireService: questionnaire}),
		NewRoleCatalogHandler(RoleCatalogHandlerConfig{RoleCatalogService: roles}),
		NewAnswerHandler(AnswerHandlerConfig{QuestionnaireService: questionnaire, AnswerService: answers}),
		NewPersonalityHandler(PersonalityHandlerConfig{PersonalityService: personality}),
		NewMatchmakingHandler(MatchmakingHandlerConfig{MatchmakingService: matchmaking}),
		NewProfileHandler(ProfileHandlerConfig{ProfileService: profiles, Members: h.directory}),
	))
	h.responder = NewResponder(router, log)
	return h
}

func (h *harness) member(userID string, roles ...string) *model.Member {
	m := &model.Member{UserID: userID, GuildID: "g1", DisplayName: "User " + userID, Roles: roles}
	h.directory.members[userID] = m
	return m
}

func (h *harness) command(member *model.Member, admin bool, name string, args bot.Args) *bot.Response {
	return h.responder.Respond(context.Background(), &bot.Request{
		ID: "i1", Kind: bot.KindCommand, GuildID: "g1", Member: member, IsAdmin: admin, Command: name, Args: args,
	})
}

func (h *harness) press(member *model.Member, customID string) *bot.Response {
	return h.responder.Respond(context.Background(), &bot.Request{
		ID: "i2", Kind: bot.KindComponent, GuildID: "g1", Member: member, CustomID: customID,
	})
}

func (h *harness) submit(member *model.Member, customID string, values map[string]string) *bot.Response {
	return h.responder.Respond(context.Background(), &bot.Request{
		ID: "i3", Kind: bot.KindModal, GuildID: "g1", Member: member, CustomID: customID, Values: values,
	})
}

func (h *harness) addQuestion(t *testing.T, key, kind, mode string, weight float64) {
	t.Helper()
	resp := h.command(h.member("admin"), true, "add_question", bot.Args{
		"key": key, "question": "Question " + key, "q_type": kind, "match_type": mode, "weight": weight,
	})
	require.Contains(t, resp.Content, "Question added successfully")
}

// ============================================================================
// Admin Commands
// ============================================================================

func TestAdminCommands_RequireAdministrator(t *testing.T) {
	h := newHarness(t)

	resp := h.command(h.member("u1"), false, "tutorial_admin", nil)
	assert.True(t, resp.Ephemeral)
	assert.Equal(t, "You do not have permission to run this command.", resp.Content)

	resp = h.command(h.member("u1"), true, "tutorial_admin", nil)
	assert.Contains(t, resp.Content, "/add_question")
}

func TestQuestionLifecycle(t *testing.T) {
	h := newHarness(t)
	admin := h.member("admin")

	h.addQuestion(t, "sleep", "choice", "similarity", 1)

	resp := h.command(admin, true, "add_question", bot.Args{
		"key": "sleep", "question": "Again", "q_type": "choice", "match_type": "similarity", "weight": 1.0,
	})
	assert.Equal(t, "A question with this key already exists!", resp.Content)

	resp = h.command(admin, true, "edit_question", bot.Args{"key": "sleep", "new_question": "Bedtime?"})
	assert.Equal(t, "Question updated successfully!", resp.Content)

	resp = h.command(admin, false, "current_form", nil)
	require.Len(t, resp.Embeds, 1)
	assert.Equal(t, "**sleep**: Bedtime?", resp.Embeds[0].Description)

	resp = h.command(admin, true, "delete_question", bot.Args{"key": "sleep"})
	assert.Equal(t, "Question deleted successfully!", resp.Content)

	resp = h.command(admin, true, "delete_question", bot.Args{"key": "sleep"})
	assert.Equal(t, "Question not found!", resp.Content)

	resp = h.command(admin, false, "current_form", nil)
	assert.Equal(t, "No questions configured yet!", resp.Content)
}

func TestAddQuestion_PromptLimit(t *testing.T) {
	h := newHarness(t)

	long := "This question is definitely longer than the limit"
	resp := h.command(h.member("admin"), true, "add_question", bot.Args{
		"key": "k", "question": long, "q_type": "choice", "match_type": "similarity", "weight": 1.0,
	})
	assert.Contains(t, resp.Content, "cannot exceed 45 characters")
}

// ============================================================================
// Registration Flow
// ============================================================================

func TestRegisterMatch_PagesThroughQuestions(t *testing.T) {
	h := newHarness(t)
	for i := 1; i <= 7; i++ {
		h.addQuestion(t, fmt.Sprintf("q%02d", i), "choice", "similarity", 1)
	}
	u1 := h.member("u1")

	resp := h.command(u1, false, "register_match", nil)
	require.Equal(t, bot.ResponseModal, resp.Kind)
	assert.Equal(t, "register:0", resp.Modal.CustomID)
	assert.Equal(t, "Matchmaking Registration (1/2)", resp.Modal.Title)
	require.Len(t, resp.Modal.Inputs, 5)
	assert.Equal(t, "q01", resp.Modal.Inputs[0].CustomID)
	for _, in := range resp.Modal.Inputs {
		assert.True(t, in.Required, "registration input %s should be required", in.CustomID)
	}

	page1 := map[string]string{"q01": "a", "q02": "a", "q03": "a", "q04": "a", "q05": "a"}
	resp = h.submit(u1, "register:0", page1)
	require.Len(t, resp.Buttons, 1)
	assert.Equal(t, "register:1", resp.Buttons[0].CustomID)

	resp = h.press(u1, "register:1")
	require.Equal(t, bot.ResponseModal, resp.Kind)
	require.Len(t, resp.Modal.Inputs, 2)
	assert.Equal(t, "q06", resp.Modal.Inputs[0].CustomID)

	resp = h.submit(u1, "register:1", map[string]string{"q06": "b", "q07": "b"})
	assert.Equal(t, "Answers registered successfully!", resp.Content)
	assert.Empty(t, resp.Buttons)

	resp = h.command(u1, false, "profile", nil)
	require.Len(t, resp.Embeds, 1)
	assert.Contains(t, resp.Embeds[0].Fields[3].Value, "**q07**: b")
}

func TestEditResponses_PrefillsAndRequiresRegistration(t *testing.T) {
	h := newHarness(t)
	h.addQuestion(t, "sleep", "choice", "similarity", 1)
	u1 := h.member("u1")

	resp := h.command(u1, false, "edit_responses", nil)
	assert.Equal(t, "You have not registered your answers yet!", resp.Content)

	h.submit(u1, "register:0", map[string]string{"sleep": "late"})

	resp = h.command(u1, false, "edit_responses", nil)
	require.Equal(t, bot.ResponseModal, resp.Kind)
	assert.Equal(t, "late", resp.Modal.Inputs[0].Value)

	resp = h.submit(u1, "edit:0", map[string]string{"sleep": "early"})
	assert.Equal(t, "Answers updated successfully!", resp.Content)

	resp = h.command(u1, false, "search_match", bot.Args{"key": "sleep", "value": "EARLY"})
	assert.Equal(t, "Users found: <@u1>", resp.Content)
}

func TestEditAnswerAndBio(t *testing.T) {
	h := newHarness(t)
	h.addQuestion(t, "sleep", "choice", "similarity", 1)
	u1 := h.member("u1")

	resp := h.command(u1, false, "edit_answer", bot.Args{"key": "sleep", "new_value": "late"})
	assert.Equal(t, "You have not registered your answers yet!", resp.Content)

	h.submit(u1, "register:0", map[string]string{"sleep": "late"})
	resp = h.command(u1, false, "edit_answer", bot.Args{"key": "pets", "new_value": "dog"})
	assert.Equal(t, "Question not found!", resp.Content)

	resp = h.command(u1, false, "edit_bio", nil)
	require.Equal(t, bot.ResponseModal, resp.Kind)
	assert.True(t, resp.Modal.Inputs[0].Paragraph)

	resp = h.submit(u1, "bio", map[string]string{"bio": "I like long walks"})
	assert.Equal(t, "Bio updated successfully!", resp.Content)

	resp = h.command(u1, false, "edit_bio", nil)
	assert.Equal(t, "I like long walks", resp.Modal.Inputs[0].Value)

	resp = h.command(u1, false, "clear_responses", nil)
	assert.Equal(t, "Answers deleted successfully!", resp.Content)
	resp = h.command(u1, false, "profile", nil)
	assert.Equal(t, "No bio registered.", resp.Embeds[0].Fields[2].Value)
}

// ============================================================================
// Personality
// ============================================================================

func TestPersonalityCommands(t *testing.T) {
	h := newHarness(t)
	u1 := h.member("u1")

	resp := h.command(u1, false, "import_test", bot.Args{"test_input": "garbage"})
	assert.Equal(t, "Invalid format. Make sure to use 'X% Category' on each line.", resp.Content)

	resp = h.command(u1, false, "import_test", bot.Args{"test_input": "80% Dominant\n45% Switch"})
	assert.Equal(t, "Personality test results imported successfully!", resp.Content)

	resp = h.command(u1, false, "edit_personality", nil)
	require.Equal(t, bot.ResponseModal, resp.Kind)
	assert.Equal(t, "80% Dominant\n45% Switch", resp.Modal.Inputs[0].Value)

	resp = h.submit(u1, "personality", map[string]string{"test_input": "60% Submissive"})
	assert.Equal(t, "Personality test results updated successfully!", resp.Content)

	resp = h.command(u1, false, "clear_test", nil)
	assert.Equal(t, "Personality test results cleared successfully!", resp.Content)
}

// ============================================================================
func TestEditResponses_InputsAreOptional(t *testing.T) {
	h := newHarness(t)
	h.addQuestion(t, "sleep", "choice", "similarity", 1)
	h.addQuestion(t, "pet", "choice", "similarity", 1)
	u1 := h.member("u1")
	h.submit(u1, "register:0", map[string]string{"sleep": "late", "pet": "cat"})

	resp := h.command(u1, false, "edit_responses", nil)
	require.Equal(t, bot.ResponseModal, resp.Kind)
	require.Len(t, resp.Modal.Inputs, 2)
	for _, in := range resp.Modal.Inputs {
		assert.False(t, in.Required, "edit input %s should be optional", in.CustomID)
	}

	resp = h.submit(u1, "edit:0", map[string]string{"sleep": "early", "pet": ""})
	assert.Equal(t, "Answers updated successfully!", resp.Content)

	resp = h.command(u1, false, "search_match", bot.Args{"key": "pet", "value": "cat"})
	assert.NotContains(t, resp.Content, "<@u1>")
}

// Matchmaking
// ============================================================================

func TestMatchmake_BrowseAndAccept(t *testing.T) {
	h := newHarness(t)
	h.addQuestion(t, "sleep", "choice", "similarity", 1)
	u1, u2, u3 := h.member("u1"), h.member("u2"), h.member("u3")
	h.submit(u1, "register:0", map[string]string{"sleep": "late"})
	h.submit(u2, "register:0", map[string]string{"sleep": "late"})
	h.submit(u3, "register:0", map[string]string{"sleep": "early"})

	resp := h.command(u1, false, "matchmake", nil)
	assert.False(t, resp.Ephemeral)
	require.Len(t, resp.Embeds, 1)
	assert.Contains(t, resp.Embeds[0].Description, "<@u2>")
	assert.Contains(t, resp.Embeds[0].Description, "50.00%")
	require.Len(t, resp.Buttons, 2)
	assert.Equal(t, "match:accept:s1", resp.Buttons[0].CustomID)
	assert.Equal(t, "match:reject:s1", resp.Buttons[1].CustomID)

	resp = h.press(u2, "match:reject:s1")
	assert.Equal(t, "Only the member who started matchmaking can respond.", resp.Content)

	resp = h.press(u1, "match:reject:s1")
	assert.Equal(t, bot.ResponseUpdate, resp.Kind)
	assert.Contains(t, resp.Embeds[0].Description, "<@u3>")

	resp = h.press(u1, "match:accept:s1")
	assert.Equal(t, bot.ResponseUpdate, resp.Kind)
	assert.Equal(t, "It's a Match!", resp.Embeds[0].Title)
	assert.Empty(t, resp.Buttons)
	assert.Equal(t, []string{"u1", "u3"}, h.notifier.recipients)

	resp = h.press(u1, "match:accept:s1")
	assert.Contains(t, resp.Content, "expired")
}

func TestMatchmake_RejectUntilExhausted(t *testing.T) {
	h := newHarness(t)
	h.addQuestion(t, "sleep", "choice", "similarity", 1)
	u1, u2 := h.member("u1"), h.member("u2")
	h.submit(u1, "register:0", map[string]string{"sleep": "late"})
	h.submit(u2, "register:0", map[string]string{"sleep": "late"})

	h.command(u1, false, "matchmake", nil)
	resp := h.press(u1, "match:reject:s1")
	assert.Equal(t, bot.ResponseUpdate, resp.Kind)
	assert.Equal(t, "No match available!", resp.Content)
	assert.Empty(t, resp.Embeds)
}

func TestMatchmake_Errors(t *testing.T) {
	h := newHarness(t)
	h.addQuestion(t, "sleep", "choice", "similarity", 1)
	u1 := h.member("u1")

	resp := h.command(u1, false, "matchmake", nil)
	assert.Equal(t, "You have not registered your answers yet!", resp.Content)

	h.submit(u1, "register:0", map[string]string{"sleep": "late"})
	resp = h.command(u1, false, "matchmake", nil)
	assert.Equal(t, "No match found!", resp.Content)
	assert.True(t, resp.Ephemeral)
}

// ============================================================================
// Profile
// ============================================================================

func TestProfile_OtherMemberWithRoles(t *testing.T) {
	h := newHarness(t)
	admin := h.member("admin")
	h.command(admin, true, "register_gender_role", bot.Args{"role": "r1", "gender": "Female"})
	h.command(admin, true, "register_orientation_role", bot.Args{"role": "r2", "orientation": "Bisexual"})

	resp := h.command(admin, true, "register_gender_role", bot.Args{"role": "r3", "gender": "Robot"})
	assert.Contains(t, resp.Content, "Invalid value for **gender**")

	h.member("u2", "r1", "r2")
	resp = h.command(h.member("u1"), false, "profile", bot.Args{"user": "u2"})
	require.Len(t, resp.Embeds, 1)

	embed := resp.Embeds[0]
	assert.Equal(t, "Profile of User u2", embed.Title)
	fields := map[string]string{}
	for _, f := range embed.Fields {
		fields[f.Name] = f.Value
	}
	assert.Equal(t, "Female", fields["Gender"])
	assert.Equal(t, "Bisexual", fields["Sexual Orientation"])
	assert.Equal(t, "Test not taken.", fields["Personality Test Results"])
	assert.Equal(t, "No answers registered.", fields["Answers"])
}

func TestProfile_UnknownMember(t *testing.T) {
	h := newHarness(t)
	resp := h.command(h.member("u1"), false, "profile", bot.Args{"user": "ghost"})
	assert.Equal(t, "Could not find the member data.", resp.Content)
}

func TestRoleCompatibilityCommand(t *testing.T) {
	h := newHarness(t)
	resp := h.command(h.member("admin"), true, "add_role_compatibility", bot.Args{
		"role_from": "r1", "role_to": "r2", "score": 7.5,
	})
	assert.Equal(t, "Compatibility from <@&r1> to <@&r2> set to **7.5**.", resp.Content)
}
