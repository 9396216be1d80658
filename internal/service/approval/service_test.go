package approval

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/remitdesk/backoffice-go/internal/domain/approval"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// passthroughTx runs the function directly, standing in for a live
// transaction.
type passthroughTx struct{}

func (passthroughTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeApprovalRepo struct {
	records map[string]approval.ApprovalRecord
	updates int
}

func (f *fakeApprovalRepo) Create(ctx context.Context, record approval.ApprovalRecord) (approval.ApprovalRecord, error) {
	if f.records == nil {
		f.records = make(map[string]approval.ApprovalRecord)
	}
	record.ID = fmt.Sprintf("apr-%d", len(f.records)+1)
	f.records[record.ID] = record
	return record, nil
}

func (f *fakeApprovalRepo) GetByID(ctx context.Context, id string) (approval.ApprovalRecord, error) {
	rec, ok := f.records[id]
	if !ok {
		return approval.ApprovalRecord{}, approval.ErrRecordNotFound
	}
	return rec, nil
}

func (f *fakeApprovalRepo) List(ctx context.Context, filter approval.Filter) ([]approval.ApprovalRecord, int64, error) {
	var out []approval.ApprovalRecord
	for _, rec := range f.records {
		out = append(out, rec)
	}
	return out, int64(len(out)), nil
}

func (f *fakeApprovalRepo) Update(ctx context.Context, record approval.ApprovalRecord) error {
	f.updates++
	f.records[record.ID] = record
	return nil
}

func (f *fakeApprovalRepo) AddStep(ctx context.Context, step approval.ApprovalStepRecord) (approval.ApprovalStepRecord, error) {
	return step, errors.New("not implemented")
}

type fakeUpdater struct {
	applied []approval.Outcome
}

func (f *fakeUpdater) ApplyOutcome(ctx context.Context, entityID string, outcome approval.Outcome) error {
	f.applied = append(f.applied, outcome)
	return nil
}

func newApprovalFixture() (*Service, *fakeApprovalRepo, *fakeUpdater) {
	repo := &fakeApprovalRepo{}
	updater := &fakeUpdater{}
	svc := NewService(passthroughTx{}, repo, map[approval.EntityKind]approval.EntityStatusUpdater{
		approval.EntityExpenseVoucher: updater,
	})
	return svc, repo, updater
}

func TestCreate_RegisteredKind(t *testing.T) {
	svc, _, _ := newApprovalFixture()

	resp, err := svc.Create(context.Background(), approval.CreateApprovalRequest{
		EntityType: string(approval.EntityExpenseVoucher),
		EntityID:   "voucher-1",
		Title:      "Taxi fare",
	}, "user-1")
	require.NoError(t, err)

	assert.Equal(t, string(approval.StatusPending), resp.Status)
	assert.Equal(t, "user-1", resp.RequestedBy)
}

func TestCreate_UnregisteredKind(t *testing.T) {
	svc, _, _ := newApprovalFixture()

	// purchase_order is a valid kind but no updater is wired for it, so the
	// record would be undecidable. Refuse it up front.
	_, err := svc.Create(context.Background(), approval.CreateApprovalRequest{
		EntityType: string(approval.EntityPurchaseOrder),
		EntityID:   "po-1",
		Title:      "Laptops",
	}, "user-1")
	assert.ErrorIs(t, err, approval.ErrNoUpdaterForEntity)
}

func TestCreate_InvalidKind(t *testing.T) {
	svc, _, _ := newApprovalFixture()

	_, err := svc.Create(context.Background(), approval.CreateApprovalRequest{
		EntityType: "lunch_order",
		EntityID:   "x",
		Title:      "nope",
	}, "user-1")
	assert.Error(t, err)
}

func TestCreate_RecordOnlyKinds(t *testing.T) {
	repo := &fakeApprovalRepo{}
	svc := NewService(passthroughTx{}, repo, map[approval.EntityKind]approval.EntityStatusUpdater{
		approval.EntityPurchaseOrder:  NewRecordOnlyUpdater(),
		approval.EntityPaymentRequest: NewRecordOnlyUpdater(),
	})

	// Purchase orders and payment requests have no table of their own; the
	// record-only updater makes them decidable all the same.
	for _, kind := range []approval.EntityKind{approval.EntityPurchaseOrder, approval.EntityPaymentRequest} {
		resp, err := svc.Create(context.Background(), approval.CreateApprovalRequest{
			EntityType: string(kind),
			EntityID:   "ext-1",
			Title:      "Office chairs",
		}, "user-1")
		require.NoError(t, err, "kind %s", kind)
		assert.Equal(t, string(approval.StatusPending), resp.Status)
	}

	// And the decision itself goes through without an entity write.
	created := repo.records["apr-1"]
	decided, err := svc.Approve(context.Background(), created.ID, "approver-1")
	require.NoError(t, err)
	assert.Equal(t, string(approval.StatusApproved), decided.Status)
}

func TestApprove_FlipsEntityStatus(t *testing.T) {
	svc, _, updater := newApprovalFixture()

	created, err := svc.Create(context.Background(), approval.CreateApprovalRequest{
		EntityType: string(approval.EntityExpenseVoucher),
		EntityID:   "voucher-1",
		Title:      "Taxi fare",
	}, "user-1")
	require.NoError(t, err)

	resp, err := svc.Approve(context.Background(), created.ID, "approver-1")
	require.NoError(t, err)

	assert.Equal(t, string(approval.StatusApproved), resp.Status)
	require.NotNil(t, resp.ApprovedBy)
	assert.Equal(t, "approver-1", *resp.ApprovedBy)
	assert.Equal(t, []approval.Outcome{approval.OutcomeApproved}, updater.applied)
}

func TestApprove_TerminalRecordRefused(t *testing.T) {
	svc, repo, updater := newApprovalFixture()

	created, err := svc.Create(context.Background(), approval.CreateApprovalRequest{
		EntityType: string(approval.EntityExpenseVoucher),
		EntityID:   "voucher-1",
		Title:      "Taxi fare",
	}, "user-1")
	require.NoError(t, err)

	_, err = svc.Approve(context.Background(), created.ID, "approver-1")
	require.NoError(t, err)

	// approved is terminal: a second decision of either outcome bounces and
	// the entity is not flipped again.
	_, err = svc.Approve(context.Background(), created.ID, "approver-2")
	assert.ErrorIs(t, err, approval.ErrAlreadyDecided)

	_, err = svc.Reject(context.Background(), approval.RejectRequest{ID: created.ID, Reason: "changed my mind"}, "approver-2")
	assert.ErrorIs(t, err, approval.ErrAlreadyDecided)

	assert.Len(t, updater.applied, 1)
	assert.Equal(t, approval.StatusApproved, repo.records[created.ID].Status)
}

func TestCancel_OnlyRequester(t *testing.T) {
	svc, repo, _ := newApprovalFixture()

	created, err := svc.Create(context.Background(), approval.CreateApprovalRequest{
		EntityType: string(approval.EntityExpenseVoucher),
		EntityID:   "voucher-1",
		Title:      "Taxi fare",
	}, "user-1")
	require.NoError(t, err)

	_, err = svc.Cancel(context.Background(), created.ID, "user-2")
	assert.ErrorIs(t, err, approval.ErrNotRequester)
	assert.Equal(t, approval.StatusPending, repo.records[created.ID].Status)

	resp, err := svc.Cancel(context.Background(), created.ID, "user-1")
	require.NoError(t, err)
	assert.Equal(t, string(approval.StatusCancelled), resp.Status)
}

func TestReject_BlankReason(t *testing.T) {
	svc, repo, updater := newApprovalFixture()

	created, err := svc.Create(context.Background(), approval.CreateApprovalRequest{
		EntityType: string(approval.EntityExpenseVoucher),
		EntityID:   "voucher-1",
		Title:      "Taxi fare",
	}, "user-1")
	require.NoError(t, err)

	_, err = svc.Reject(context.Background(), approval.RejectRequest{ID: created.ID, Reason: "   "}, "approver-1")
	assert.ErrorIs(t, err, approval.ErrReasonRequired)

	// Nothing was touched: the record is still pending and the entity status
	// was never flipped.
	assert.Equal(t, 0, repo.updates)
	assert.Empty(t, updater.applied)
	assert.Equal(t, approval.StatusPending, repo.records[created.ID].Status)
}
