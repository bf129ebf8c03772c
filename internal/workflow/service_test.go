package workflow

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/brokerage/rms-api/internal/database"
	"github.com/brokerage/rms-api/internal/system/error/serviceerror"
	"github.com/brokerage/rms-api/pkg/utils"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type widgetKey struct {
	Code string `db:"CO_CODE" json:"coCode" validate:"required,max=6,alphanum"`
}

func (k widgetKey) Validate() error { return utils.ValidateStruct(k) }
func (k widgetKey) Args() []any     { return []any{k.Code} }
func (k widgetKey) String() string  { return k.Code }

type widgetFields struct {
	Name     string          `db:"CO_NAME" json:"coName" validate:"required,max=120"`
	BuyLimit decimal.Decimal `db:"CO_EXPS_BUY_AMT" json:"coExpsBuyAmt" validate:"gte=0"`
}

type widget struct {
	widgetKey
	widgetFields
	State
}

func (w *widget) RecordKey() widgetKey   { return w.widgetKey }
func (w *widget) Payload() *widgetFields { return &w.widgetFields }
func (w *widget) WorkflowState() *State  { return &w.State }

var widgetTable = Table{
	Name:           "COMPANY",
	Entity:         "widget",
	KeyColumns:     []string{"CO_CODE"},
	PayloadColumns: []string{"CO_NAME", "CO_EXPS_BUY_AMT"},
	SearchColumns:  []string{"CO_CODE", "CO_NAME"},
	FilterColumns:  map[string]string{"coName": "CO_NAME"},
	SortColumns:    map[string]string{"coCode": "CO_CODE", "coName": "CO_NAME"},
}

type widgetService = Service[widgetKey, widgetFields, widget, *widget]

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) PublishDecision(ctx context.Context, event DecisionEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type countingRecorder struct {
	mu     sync.Mutex
	counts map[string]int
}

func (r *countingRecorder) RecordTransition(entity, action, outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.counts == nil {
		r.counts = map[string]int{}
	}
	r.counts[entity+"/"+action+"/"+outcome]++
}

func (r *countingRecorder) get(key string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.counts[key]
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

func newWidgetService(t *testing.T, cfg Config, publisher Publisher, recorder Recorder) *widgetService {
	t.Helper()
	db := database.OpenTestDB(t)
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	clock := &fakeClock{now: testNow}

	deps := Deps{
		DB:        db,
		Trail:     NewAuditTrail(db),
		Publisher: publisher,
		Recorder:  recorder,
		Logger:    logger,
		Config:    cfg,
		Clock:     clock.Now,
	}
	return NewService(deps, NewStore[widgetKey, widgetFields, widget, *widget](db, widgetTable), nil)
}

func newWidget(code, name string, limit int64) *widget {
	return &widget{
		widgetKey:    widgetKey{Code: code},
		widgetFields: widgetFields{Name: name, BuyLimit: decimal.NewFromInt(limit)},
	}
}

func firstPage() ListQuery {
	return ListQuery{PageNumber: 1, PageSize: 100}
}

func createApproved(t *testing.T, svc *widgetService, w *widget) *widget {
	t.Helper()
	ctx := context.Background()
	_, err := svc.Create(ctx, w, makerUser)
	require.NoError(t, err)
	rec, err := svc.Authorize(ctx, w.widgetKey, Approve, checker)
	require.NoError(t, err)
	return rec
}

func codesOf(items []*widget) []string {
	out := make([]string, len(items))
	for i, w := range items {
		out[i] = w.Code
	}
	return out
}

func TestService_CreateApproveRoundTrip(t *testing.T) {
	svc := newWidgetService(t, Config{}, nil, nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, newWidget("ACME", "Acme", 1000), makerUser)
	require.NoError(t, err)
	assert.Equal(t, Unauthorized, created.IsAuth)
	assert.Equal(t, ActionInsert, created.ActionType)
	assert.Equal(t, int64(7), created.MakerID)
	assert.Nil(t, created.AuthID)

	pending, err := svc.WorkflowList(ctx, Unauthorized, firstPage())
	require.NoError(t, err)
	assert.Equal(t, []string{"ACME"}, codesOf(pending.Items))

	live, err := svc.List(ctx, firstPage())
	require.NoError(t, err)
	assert.Empty(t, live.Items, "an unapproved insert is not live")

	exists, err := svc.Exists(ctx, widgetKey{Code: "ACME"})
	require.NoError(t, err)
	assert.False(t, exists)

	approved, err := svc.Authorize(ctx, widgetKey{Code: "ACME"}, Approve, checker)
	require.NoError(t, err)
	assert.Equal(t, Authorized, approved.IsAuth)
	require.NotNil(t, approved.AuthID)
	assert.Equal(t, int64(9), *approved.AuthID)
	assert.NotNil(t, approved.AuthDt)
	assert.NotNil(t, approved.AuthTransDt)

	live, err = svc.List(ctx, firstPage())
	require.NoError(t, err)
	require.Len(t, live.Items, 1)
	assert.Equal(t, "Acme", live.Items[0].Name)
	assert.True(t, decimal.NewFromInt(1000).Equal(live.Items[0].BuyLimit))

	pending, err = svc.WorkflowList(ctx, Unauthorized, firstPage())
	require.NoError(t, err)
	assert.Empty(t, pending.Items)

	exists, err = svc.Exists(ctx, widgetKey{Code: "ACME"})
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestService_UpdateStagesUntilApproved(t *testing.T) {
	svc := newWidgetService(t, Config{}, nil, nil)
	ctx := context.Background()
	createApproved(t, svc, newWidget("ACME", "Acme", 1000))

	staged, err := svc.Update(ctx, widgetKey{Code: "ACME"}, newWidget("ACME", "Acme Holdings", 2000), makerUser)
	require.NoError(t, err)
	assert.Equal(t, ActionUpdate, staged.ActionType)
	assert.Equal(t, Unauthorized, staged.IsAuth)
	assert.Equal(t, "Acme", staged.Name, "live payload is unchanged until approval")
	assert.Nil(t, staged.AuthID)

	got, err := svc.Get(ctx, widgetKey{Code: "ACME"})
	require.NoError(t, err)
	proposed, err := svc.Pending(got)
	require.NoError(t, err)
	require.NotNil(t, proposed)
	assert.Equal(t, "Acme Holdings", proposed.Name)

	live, err := svc.List(ctx, firstPage())
	require.NoError(t, err)
	require.Len(t, live.Items, 1)
	assert.Equal(t, "Acme", live.Items[0].Name, "an authorized row with a pending update stays live")

	approved, err := svc.Authorize(ctx, widgetKey{Code: "ACME"}, Approve, checker)
	require.NoError(t, err)
	assert.Equal(t, "Acme Holdings", approved.Name)
	assert.True(t, decimal.NewFromInt(2000).Equal(approved.BuyLimit))
	assert.Nil(t, approved.PendingPayload)

	got, err = svc.Get(ctx, widgetKey{Code: "ACME"})
	require.NoError(t, err)
	assert.Equal(t, "Acme Holdings", got.Name)
}

func TestService_DenyUpdateThenApprove(t *testing.T) {
	svc := newWidgetService(t, Config{}, nil, nil)
	ctx := context.Background()
	key := widgetKey{Code: "KLS"}
	createApproved(t, svc, newWidget("KLS", "Kuala", 10))

	_, err := svc.Update(ctx, key, newWidget("KLS", "Kuala Lumpur", 20), makerUser)
	require.NoError(t, err)

	denied, err := svc.Authorize(ctx, key, Deny, checker)
	require.NoError(t, err)
	assert.Equal(t, Denied, denied.IsAuth)
	assert.Equal(t, "Kuala", denied.Name)
	assert.NotNil(t, denied.PendingPayload, "a denied update keeps its staged payload")

	denyList, err := svc.WorkflowList(ctx, Denied, firstPage())
	require.NoError(t, err)
	assert.Equal(t, []string{"KLS"}, codesOf(denyList.Items))

	approved, err := svc.Authorize(ctx, key, Approve, checker)
	require.NoError(t, err)
	assert.Equal(t, Authorized, approved.IsAuth)
	assert.Equal(t, "Kuala Lumpur", approved.Name)
}

func TestService_DeleteLifecycle(t *testing.T) {
	svc := newWidgetService(t, Config{}, nil, nil)
	ctx := context.Background()
	createApproved(t, svc, newWidget("AAA", "Alpha", 1))
	createApproved(t, svc, newWidget("BBB", "Beta", 1))

	_, err := svc.Delete(ctx, widgetKey{Code: "AAA"}, makerUser)
	require.NoError(t, err)
	_, err = svc.Delete(ctx, widgetKey{Code: "BBB"}, makerUser)
	require.NoError(t, err)

	_, err = svc.Delete(ctx, widgetKey{Code: "AAA"}, makerUser)
	assert.Equal(t, serviceerror.KindInvalidState, serviceerror.KindOf(err))

	approved, err := svc.Authorize(ctx, widgetKey{Code: "AAA"}, Approve, checker)
	require.NoError(t, err)
	assert.Equal(t, Deleted, approved.IsDel)

	denied, err := svc.Authorize(ctx, widgetKey{Code: "BBB"}, Deny, checker)
	require.NoError(t, err)
	assert.Equal(t, NotDeleted, denied.IsDel)
	assert.Equal(t, Denied, denied.IsAuth)

	live, err := svc.List(ctx, firstPage())
	require.NoError(t, err)
	assert.Equal(t, []string{"BBB"}, codesOf(live.Items))

	exists, err := svc.Exists(ctx, widgetKey{Code: "AAA"})
	require.NoError(t, err)
	assert.False(t, exists)

	history, err := svc.WorkflowList(ctx, Authorized, firstPage())
	require.NoError(t, err)
	assert.Contains(t, codesOf(history.Items), "AAA", "the authorized view keeps deleted rows")

	_, err = svc.Update(ctx, widgetKey{Code: "AAA"}, newWidget("AAA", "Alpha 2", 1), makerUser)
	assert.Equal(t, serviceerror.KindNotFound, serviceerror.KindOf(err))

	_, err = svc.Delete(ctx, widgetKey{Code: "BBB"}, makerUser)
	require.NoError(t, err, "a denied delete can be staged again")
}

func TestService_AuthorizeRules(t *testing.T) {
	svc := newWidgetService(t, Config{}, nil, nil)
	ctx := context.Background()
	key := widgetKey{Code: "ACME"}

	_, err := svc.Create(ctx, newWidget("ACME", "Acme", 1), makerUser)
	require.NoError(t, err)

	_, err = svc.Authorize(ctx, key, Approve, makerUser)
	assert.Equal(t, serviceerror.KindInvalidState, serviceerror.KindOf(err), "maker cannot approve own change")

	_, err = svc.Authorize(ctx, key, Approve, checker)
	require.NoError(t, err)

	_, err = svc.Authorize(ctx, key, Approve, checker)
	assert.Equal(t, serviceerror.KindInvalidState, serviceerror.KindOf(err))
	_, err = svc.Authorize(ctx, key, Deny, checker)
	assert.Equal(t, serviceerror.KindInvalidState, serviceerror.KindOf(err))

	_, err = svc.Authorize(ctx, widgetKey{Code: "NONE"}, Approve, checker)
	assert.Equal(t, serviceerror.KindNotFound, serviceerror.KindOf(err))

	_, err = svc.Authorize(ctx, key, Approve, Actor{})
	assert.Equal(t, serviceerror.KindValidation, serviceerror.KindOf(err))
}

func TestService_SelfAuthorizationAllowed(t *testing.T) {
	svc := newWidgetService(t, Config{AllowSelfAuthorization: true}, nil, nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, newWidget("ACME", "Acme", 1), makerUser)
	require.NoError(t, err)
	rec, err := svc.Authorize(ctx, widgetKey{Code: "ACME"}, Approve, makerUser)
	require.NoError(t, err)
	assert.Equal(t, Authorized, rec.IsAuth)
}

func TestService_PendingUpdatePolicy(t *testing.T) {
	ctx := context.Background()

	t.Run("reject", func(t *testing.T) {
		svc := newWidgetService(t, Config{PendingUpdatePolicy: RejectPendingUpdate}, nil, nil)
		createApproved(t, svc, newWidget("ACME", "Acme", 1))

		_, err := svc.Update(ctx, widgetKey{Code: "ACME"}, newWidget("ACME", "First", 1), makerUser)
		require.NoError(t, err)
		_, err = svc.Update(ctx, widgetKey{Code: "ACME"}, newWidget("ACME", "Second", 1), makerUser)
		assert.Equal(t, serviceerror.KindInvalidState, serviceerror.KindOf(err))
	})

	t.Run("overwrite pending update", func(t *testing.T) {
		svc := newWidgetService(t, Config{PendingUpdatePolicy: OverwritePendingUpdate}, nil, nil)
		createApproved(t, svc, newWidget("ACME", "Acme", 1))

		_, err := svc.Update(ctx, widgetKey{Code: "ACME"}, newWidget("ACME", "First", 1), makerUser)
		require.NoError(t, err)
		second := Actor{UserID: 8, IPAddress: "10.0.0.8", TransDate: testNow}
		staged, err := svc.Update(ctx, widgetKey{Code: "ACME"}, newWidget("ACME", "Second", 1), second)
		require.NoError(t, err)
		assert.Equal(t, int64(8), staged.MakerID)

		approved, err := svc.Authorize(ctx, widgetKey{Code: "ACME"}, Approve, checker)
		require.NoError(t, err)
		assert.Equal(t, "Second", approved.Name)
	})

	t.Run("overwrite pending insert", func(t *testing.T) {
		svc := newWidgetService(t, Config{PendingUpdatePolicy: OverwritePendingUpdate}, nil, nil)
		_, err := svc.Create(ctx, newWidget("ACME", "Acme", 1), makerUser)
		require.NoError(t, err)

		staged, err := svc.Update(ctx, widgetKey{Code: "ACME"}, newWidget("ACME", "Acme Corp", 5), makerUser)
		require.NoError(t, err)
		assert.Equal(t, ActionInsert, staged.ActionType)
		assert.Equal(t, "Acme Corp", staged.Name)
		assert.Nil(t, staged.PendingPayload)
	})
}

func TestService_CreateConflictAndRecreate(t *testing.T) {
	svc := newWidgetService(t, Config{}, nil, nil)
	ctx := context.Background()
	key := widgetKey{Code: "ACME"}

	_, err := svc.Create(ctx, newWidget("ACME", "Acme", 1), makerUser)
	require.NoError(t, err)
	_, err = svc.Create(ctx, newWidget("ACME", "Acme again", 1), makerUser)
	assert.Equal(t, serviceerror.KindConflict, serviceerror.KindOf(err))

	_, err = svc.Authorize(ctx, key, Deny, checker)
	require.NoError(t, err)

	recreated, err := svc.Create(ctx, newWidget("ACME", "Acme again", 1), makerUser)
	require.NoError(t, err, "a denied insert can be created again")
	assert.Equal(t, Unauthorized, recreated.IsAuth)
	assert.Nil(t, recreated.AuthID)

	_, err = svc.Authorize(ctx, key, Approve, checker)
	require.NoError(t, err)
	_, err = svc.Delete(ctx, key, makerUser)
	require.NoError(t, err)
	_, err = svc.Authorize(ctx, key, Approve, checker)
	require.NoError(t, err)

	recreated, err = svc.Create(ctx, newWidget("ACME", "Acme reborn", 1), makerUser)
	require.NoError(t, err, "a soft deleted key can be created again")
	assert.Equal(t, NotDeleted, recreated.IsDel)
}

func TestService_Validation(t *testing.T) {
	svc := newWidgetService(t, Config{}, nil, nil)
	ctx := context.Background()

	tests := []struct {
		name string
		run  func() error
	}{
		{"empty key", func() error {
			_, err := svc.Create(ctx, newWidget("", "Acme", 1), makerUser)
			return err
		}},
		{"key not alphanumeric", func() error {
			_, err := svc.Create(ctx, newWidget("AC-ME", "Acme", 1), makerUser)
			return err
		}},
		{"missing name", func() error {
			_, err := svc.Create(ctx, newWidget("ACME", "", 1), makerUser)
			return err
		}},
		{"negative limit", func() error {
			_, err := svc.Create(ctx, newWidget("ACME", "Acme", -1), makerUser)
			return err
		}},
		{"missing maker", func() error {
			_, err := svc.Create(ctx, newWidget("ACME", "Acme", 1), Actor{})
			return err
		}},
		{"nil record", func() error {
			_, err := svc.Create(ctx, nil, makerUser)
			return err
		}},
		{"key mismatch", func() error {
			_, err := svc.Update(ctx, widgetKey{Code: "OTHER"}, newWidget("ACME", "Acme", 1), makerUser)
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, serviceerror.KindValidation, serviceerror.KindOf(tt.run()))
		})
	}

	pending, err := svc.WorkflowList(ctx, Unauthorized, firstPage())
	require.NoError(t, err)
	assert.Empty(t, pending.Items, "rejected input must not be persisted")
}

func TestService_NotFound(t *testing.T) {
	svc := newWidgetService(t, Config{}, nil, nil)
	ctx := context.Background()
	key := widgetKey{Code: "NONE"}

	_, err := svc.Get(ctx, key)
	assert.Equal(t, serviceerror.KindNotFound, serviceerror.KindOf(err))
	_, err = svc.Update(ctx, key, newWidget("NONE", "x", 1), makerUser)
	assert.Equal(t, serviceerror.KindNotFound, serviceerror.KindOf(err))
	_, err = svc.Delete(ctx, key, makerUser)
	assert.Equal(t, serviceerror.KindNotFound, serviceerror.KindOf(err))
}

func TestService_PaginationCoversEveryRowOnce(t *testing.T) {
	svc := newWidgetService(t, Config{}, nil, nil)
	ctx := context.Background()

	var want []string
	for i := 0; i < 23; i++ {
		code := fmt.Sprintf("W%03d", i)
		want = append(want, code)
		_, err := svc.Create(ctx, newWidget(code, "Widget", int64(i)), makerUser)
		require.NoError(t, err)
	}

	var got []string
	for page := 1; ; page++ {
		result, err := svc.WorkflowList(ctx, Unauthorized, ListQuery{PageNumber: page, PageSize: 10})
		require.NoError(t, err)
		assert.Equal(t, 23, result.TotalCount)
		assert.Equal(t, 3, result.TotalPages)
		assert.Equal(t, page > 1, result.HasPreviousPage)
		got = append(got, codesOf(result.Items)...)
		if !result.HasNextPage {
			break
		}
	}
	assert.Equal(t, want, got)

	beyond, err := svc.WorkflowList(ctx, Unauthorized, ListQuery{PageNumber: 9, PageSize: 10})
	require.NoError(t, err)
	assert.Empty(t, beyond.Items)
	assert.NotNil(t, beyond.Items)
}

func TestService_ListSearchFilterSort(t *testing.T) {
	svc := newWidgetService(t, Config{}, nil, nil)
	ctx := context.Background()
	createApproved(t, svc, newWidget("AAA", "Zeta Corp", 1))
	createApproved(t, svc, newWidget("BBB", "Alpha Corp", 1))
	createApproved(t, svc, newWidget("CCC", "Beta 100%", 1))

	result, err := svc.List(ctx, ListQuery{PageNumber: 1, PageSize: 10, SearchTerm: "corp"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"AAA", "BBB"}, codesOf(result.Items))

	result, err = svc.List(ctx, ListQuery{PageNumber: 1, PageSize: 10, SearchTerm: "0%"})
	require.NoError(t, err)
	assert.Equal(t, []string{"CCC"}, codesOf(result.Items), "wildcards in the search term are literal")

	result, err = svc.List(ctx, ListQuery{PageNumber: 1, PageSize: 10, Filters: map[string]string{"coName": "Alpha Corp"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"BBB"}, codesOf(result.Items))

	result, err = svc.List(ctx, ListQuery{PageNumber: 1, PageSize: 10, SortColumn: "coName", SortDirection: "desc"})
	require.NoError(t, err)
	assert.Equal(t, []string{"AAA", "CCC", "BBB"}, codesOf(result.Items))

	invalid := []ListQuery{
		{PageNumber: 0, PageSize: 10},
		{PageNumber: 1, PageSize: 0},
		{PageNumber: 1, PageSize: 101},
		{PageNumber: 1, PageSize: 10, SortColumn: "CO_NAME; DROP TABLE COMPANY"},
		{PageNumber: 1, PageSize: 10, SortDirection: "SIDEWAYS"},
		{PageNumber: 1, PageSize: 10, Filters: map[string]string{"unknown": "x"}},
		{PageNumber: 1, PageSize: 10, SearchTerm: strings.Repeat("x", 101)},
	}
	for i, lq := range invalid {
		_, err := svc.List(ctx, lq)
		assert.Equal(t, serviceerror.KindValidation, serviceerror.KindOf(err), "query %d", i)
	}

	_, err = svc.WorkflowList(ctx, AuthState(5), firstPage())
	assert.Equal(t, serviceerror.KindValidation, serviceerror.KindOf(err))
}

func TestService_History(t *testing.T) {
	svc := newWidgetService(t, Config{}, nil, nil)
	ctx := context.Background()
	key := widgetKey{Code: "ACME"}

	createApproved(t, svc, newWidget("ACME", "Acme", 1))
	_, err := svc.Update(ctx, key, newWidget("ACME", "Acme 2", 1), makerUser)
	require.NoError(t, err)
	_, err = svc.Authorize(ctx, key, Deny, checker)
	require.NoError(t, err)

	entries, err := svc.History(ctx, key)
	require.NoError(t, err)
	require.Len(t, entries, 4)

	assert.Equal(t, ActionInsert, entries[0].ActionType)
	assert.Nil(t, entries[0].FromState)
	assert.Equal(t, Unauthorized, entries[0].ToState)
	assert.Equal(t, int64(7), entries[0].ActorID)
	assert.True(t, utils.IsAuditID(entries[0].AuditID))

	assert.Equal(t, string(Approve), entries[1].Decision)
	assert.Equal(t, Authorized, entries[1].ToState)
	assert.Equal(t, int64(9), entries[1].ActorID)

	assert.Equal(t, ActionUpdate, entries[2].ActionType)
	require.NotNil(t, entries[2].FromState)
	assert.Equal(t, Authorized, *entries[2].FromState)

	assert.Equal(t, string(Deny), entries[3].Decision)
	assert.Equal(t, Denied, entries[3].ToState)
}

func TestService_PublishesCommittedDecisions(t *testing.T) {
	publisher := &mockPublisher{}
	publisher.On("PublishDecision", mock.Anything, mock.MatchedBy(func(e DecisionEvent) bool {
		return e.Entity == "widget" && e.Key == "ACME" && e.Decision == Approve &&
			e.IsAuth == Authorized && e.CheckerID == 9 && e.MakerID == 7
	})).Return(errors.New("broker unavailable")).Once()

	svc := newWidgetService(t, Config{}, publisher, nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, newWidget("ACME", "Acme", 1), makerUser)
	require.NoError(t, err)
	rec, err := svc.Authorize(ctx, widgetKey{Code: "ACME"}, Approve, checker)
	require.NoError(t, err, "publish failures do not undo a committed decision")
	assert.Equal(t, Authorized, rec.IsAuth)

	_, err = svc.Authorize(ctx, widgetKey{Code: "ACME"}, Approve, checker)
	require.Error(t, err)

	publisher.AssertExpectations(t)
}

func TestService_RecordsOutcomes(t *testing.T) {
	recorder := &countingRecorder{}
	svc := newWidgetService(t, Config{}, nil, recorder)
	ctx := context.Background()

	_, err := svc.Create(ctx, newWidget("ACME", "Acme", 1), makerUser)
	require.NoError(t, err)
	_, _ = svc.Create(ctx, newWidget("ACME", "Acme", 1), makerUser)
	_, _ = svc.Authorize(ctx, widgetKey{Code: "NONE"}, Approve, checker)

	assert.Equal(t, 1, recorder.get("widget/create/success"))
	assert.Equal(t, 1, recorder.get("widget/create/conflict"))
	assert.Equal(t, 1, recorder.get("widget/authorize/not_found"))
}

func TestService_CancelledContext(t *testing.T) {
	svc := newWidgetService(t, Config{}, nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Create(ctx, newWidget("ACME", "Acme", 1), makerUser)
	require.Error(t, err)
	assert.Equal(t, serviceerror.KindStore, serviceerror.KindOf(err))

	pending, err := svc.WorkflowList(context.Background(), Unauthorized, firstPage())
	require.NoError(t, err)
	assert.Empty(t, pending.Items)
}

func TestService_StaleRowVersion(t *testing.T) {
	svc := newWidgetService(t, Config{}, nil, nil)
	ctx := context.Background()
	createApproved(t, svc, newWidget("ACME", "Acme", 1))

	stale, err := svc.Get(ctx, widgetKey{Code: "ACME"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, widgetKey{Code: "ACME"}, newWidget("ACME", "Acme 2", 1), makerUser)
	require.NoError(t, err)

	err = svc.db.WithTransaction(ctx, func(tx *database.Transaction) error {
		return svc.Store().Save(ctx, tx, stale)
	})
	assert.Equal(t, serviceerror.KindInvalidState, serviceerror.KindOf(err))
}

func TestStore_CountByView(t *testing.T) {
	svc := newWidgetService(t, Config{}, nil, nil)
	ctx := context.Background()
	createApproved(t, svc, newWidget("AAA", "Zeta Corp", 1))
	_, err := svc.Create(ctx, newWidget("BBB", "Alpha Corp", 1), makerUser)
	require.NoError(t, err)

	store := svc.Store()
	live, err := store.Count(ctx, svc.db, LiveView(), ListQuery{})
	require.NoError(t, err)
	assert.Equal(t, 1, live, "pending inserts are not live")

	pending, err := store.Count(ctx, svc.db, WorkflowView(Unauthorized), ListQuery{SearchTerm: "corp"})
	require.NoError(t, err)
	assert.Equal(t, 1, pending)

	items, total, err := store.List(ctx, svc.db, WorkflowView(Denied), firstPage())
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, items)
}
