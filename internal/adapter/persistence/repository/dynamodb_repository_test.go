package repository

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"repairdesk/internal/domain/entities"
	"repairdesk/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// fakeDynamo records inputs and replays canned outputs.
type fakeDynamo struct {
	getItem    func(*dynamodb.GetItemInput) (*dynamodb.GetItemOutput, error)
	query      func(*dynamodb.QueryInput) (*dynamodb.QueryOutput, error)
	updateItem func(*dynamodb.UpdateItemInput) (*dynamodb.UpdateItemOutput, error)
	transact   func(*dynamodb.TransactWriteItemsInput) (*dynamodb.TransactWriteItemsOutput, error)

	queries   []*dynamodb.QueryInput
	transacts []*dynamodb.TransactWriteItemsInput
}

func (f *fakeDynamo) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	if f.getItem == nil {
		return &dynamodb.GetItemOutput{}, nil
	}
	return f.getItem(in)
}

func (f *fakeDynamo) PutItem(_ context.Context, _ *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamo) UpdateItem(_ context.Context, in *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	if f.updateItem == nil {
		return &dynamodb.UpdateItemOutput{}, nil
	}
	return f.updateItem(in)
}

func (f *fakeDynamo) Query(_ context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	f.queries = append(f.queries, in)
	if f.query == nil {
		return &dynamodb.QueryOutput{}, nil
	}
	return f.query(in)
}

func (f *fakeDynamo) Scan(_ context.Context, _ *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	return &dynamodb.ScanOutput{}, nil
}

func (f *fakeDynamo) TransactWriteItems(_ context.Context, in *dynamodb.TransactWriteItemsInput, _ ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error) {
	f.transacts = append(f.transacts, in)
	if f.transact == nil {
		return &dynamodb.TransactWriteItemsOutput{}, nil
	}
	return f.transact(in)
}

func sampleJob() entities.Job {
	t0 := time.Date(2026, 2, 3, 4, 5, 6, 789000000, time.UTC)
	j := entities.Job{
		ID:           "job-1",
		Customer:     entities.Customer{Name: "Ravi", Phone: "98765", Address: "MG Road"},
		Device:       entities.Device{Type: "iPhone", Issue: "Screen"},
		TechnicianID: "tech-1",
		AssignedBy:   "admin-1",
		Status:       entities.JobStatusQCBefore,
		QCBefore:     &entities.QCReport{Display: entities.CheckOK, IMEI: "3567", Model: "13"},
		Financials:   entities.ComputeFinancials(1000, 500),
		CreatedBy:    "admin-1",
		CreatedAt:    t0,
		UpdatedAt:    t0.Add(time.Hour),
	}
	for i, s := range entities.JobStatusOrder[:entities.JobStatusQCBefore.Index()+1] {
		j.Timeline.Set(s, t0.Add(time.Duration(i)*time.Minute))
	}
	return j
}

func TestJobItemMapping(t *testing.T) {
	want := sampleJob()
	end := want.CreatedAt.Add(2 * time.Hour)
	want.Timeline.JobEndAt = &end
	av, err := attributevalue.MarshalMap(toJobItem(want))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if _, ok := av["qc_after"]; ok {
		t.Fatalf("qc_after must be omitted when unset")
	}
	var it jobItem
	if err := attributevalue.UnmarshalMap(av, &it); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	got := fromJobItem(it)

	if got.Status != want.Status || got.TechnicianID != "tech-1" || got.Financials != want.Financials {
		t.Fatalf("unexpected job: %+v", got)
	}
	if !got.Timeline.Consistent(entities.JobStatusQCBefore) || !got.Timeline.DoorstepAt.Equal(*want.Timeline.DoorstepAt) {
		t.Fatalf("timeline not preserved: %+v", got.Timeline)
	}
	if got.Timeline.JobEndAt == nil || !got.Timeline.JobEndAt.Equal(end) {
		t.Fatalf("repair end not preserved: %+v", got.Timeline.JobEndAt)
	}
	if got.QCBefore == nil || got.QCBefore.Display != entities.CheckOK || got.QCBefore.Charging != entities.CheckUnset {
		t.Fatalf("qc not preserved: %+v", got.QCBefore)
	}
}

func TestJobDynamoRepository_ApplyStatusChange(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2026, 2, 3, 9, 0, 0, 0, time.UTC)
	change := entities.StatusChange{
		JobID:    "job-1",
		From:     entities.JobStatusJobStarted,
		To:       entities.JobStatusQCAfter,
		At:       at,
		QCReport: &entities.QCReport{IMEI: "1", Model: "m"},
		History:  entities.StatusHistoryEntry{ID: "h-9", JobID: "job-1", Status: entities.JobStatusQCAfter, ChangedBy: "tech-1", ChangedAt: at},
	}

	t.Run("conditional update plus history put", func(t *testing.T) {
		stored := sampleJob()
		stored.Status = entities.JobStatusQCAfter
		av, _ := attributevalue.MarshalMap(toJobItem(stored))
		fake := &fakeDynamo{getItem: func(*dynamodb.GetItemInput) (*dynamodb.GetItemOutput, error) {
			return &dynamodb.GetItemOutput{Item: av}, nil
		}}
		repo := NewJobDynamoRepository(fake, "", "")

		got, err := repo.ApplyStatusChange(ctx, change)
		if err != nil {
			t.Fatalf("apply: %v", err)
		}
		if got.Status != entities.JobStatusQCAfter {
			t.Fatalf("expected re-read job, got %+v", got)
		}

		if len(fake.transacts) != 1 || len(fake.transacts[0].TransactItems) != 2 {
			t.Fatalf("expected one transaction with two items, got %+v", fake.transacts)
		}
		upd := fake.transacts[0].TransactItems[0].Update
		if upd == nil || aws.ToString(upd.TableName) != defaultJobsTableName {
			t.Fatalf("expected update on jobs table, got %+v", upd)
		}
		if aws.ToString(upd.ConditionExpression) != "attribute_exists(#id) AND #status = :from" {
			t.Fatalf("unexpected condition: %s", aws.ToString(upd.ConditionExpression))
		}
		if from := upd.ExpressionAttributeValues[":from"].(*types.AttributeValueMemberS).Value; from != "job_started" {
			t.Fatalf("unexpected :from %q", from)
		}
		expr := aws.ToString(upd.UpdateExpression)
		if !strings.Contains(expr, "#timeline.#step = :at") || !strings.Contains(expr, "#qc = :qc") {
			t.Fatalf("unexpected update expression: %s", expr)
		}
		if upd.ExpressionAttributeNames["#qc"] != "qc_after" || upd.ExpressionAttributeNames["#step"] != "qc_after" {
			t.Fatalf("unexpected names: %+v", upd.ExpressionAttributeNames)
		}
		if !strings.Contains(expr, "#timeline.#job_end = :at") || upd.ExpressionAttributeNames["#job_end"] != "job_end" {
			t.Fatalf("expected repair end stamped with qc_after, got %s", expr)
		}

		put := fake.transacts[0].TransactItems[1].Put
		if put == nil || aws.ToString(put.TableName) != defaultHistoryTableName {
			t.Fatalf("expected history put, got %+v", put)
		}
		sk := put.Item["sk"].(*types.AttributeValueMemberS).Value
		if sk != "2026-02-03T09:00:00.000000000Z#h-9" {
			t.Fatalf("unexpected sort key %q", sk)
		}
	})

	t.Run("cancelled transaction maps to condition failed", func(t *testing.T) {
		fake := &fakeDynamo{transact: func(*dynamodb.TransactWriteItemsInput) (*dynamodb.TransactWriteItemsOutput, error) {
			return nil, &types.TransactionCanceledException{
				Message: aws.String("Transaction cancelled"),
				CancellationReasons: []types.CancellationReason{
					{Code: aws.String("ConditionalCheckFailed")},
					{Code: aws.String("None")},
				},
			}
		}}
		repo := NewJobDynamoRepository(fake, "", "")

		_, err := repo.ApplyStatusChange(ctx, change)
		if !errors.Is(err, interfaces.ErrConditionFailed) {
			t.Fatalf("expected ErrConditionFailed, got %v", err)
		}
	})

	t.Run("other errors pass through", func(t *testing.T) {
		boom := errors.New("throttled")
		fake := &fakeDynamo{transact: func(*dynamodb.TransactWriteItemsInput) (*dynamodb.TransactWriteItemsOutput, error) {
			return nil, boom
		}}
		_, err := NewJobDynamoRepository(fake, "", "").ApplyStatusChange(ctx, change)
		if !errors.Is(err, boom) {
			t.Fatalf("expected raw error, got %v", err)
		}
	})
}

func TestJobDynamoRepository_Reads(t *testing.T) {
	ctx := context.Background()

	t.Run("missing job is empty", func(t *testing.T) {
		got, err := NewJobDynamoRepository(&fakeDynamo{}, "", "").GetByID(ctx, "nope")
		if err != nil || got.ID != "" {
			t.Fatalf("expected empty job, got %+v %v", got, err)
		}
	})

	t.Run("technician listing pages through the index", func(t *testing.T) {
		first, _ := attributevalue.MarshalMap(toJobItem(sampleJob()))
		second := sampleJob()
		second.ID = "job-2"
		secondAV, _ := attributevalue.MarshalMap(toJobItem(second))

		calls := 0
		fake := &fakeDynamo{query: func(in *dynamodb.QueryInput) (*dynamodb.QueryOutput, error) {
			calls++
			if calls == 1 {
				return &dynamodb.QueryOutput{
					Items:            []map[string]types.AttributeValue{first},
					LastEvaluatedKey: map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: "job-1"}},
				}, nil
			}
			if in.ExclusiveStartKey == nil {
				t.Fatalf("second page must carry the start key")
			}
			return &dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{secondAV}}, nil
		}}

		jobs, err := NewJobDynamoRepository(fake, "", "").List(ctx, entities.JobFilter{TechnicianID: "tech-1", Status: entities.JobStatusQCBefore})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(jobs) != 2 || calls != 2 {
			t.Fatalf("expected 2 jobs over 2 pages, got %d jobs in %d calls", len(jobs), calls)
		}
		q := fake.queries[0]
		if aws.ToString(q.IndexName) != jobsTechnicianIndex || aws.ToString(q.FilterExpression) != "#status = :status" {
			t.Fatalf("unexpected query: %+v", q)
		}
	})
}

func TestInviteDynamoRepository_Redeem(t *testing.T) {
	ctx := context.Background()
	user := entities.User{ID: "u-1", Email: "a@b.c", Name: "A", Role: entities.RoleTechnician, CreatedAt: time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC)}

	t.Run("invite flip and user binding share one transaction", func(t *testing.T) {
		av, _ := attributevalue.MarshalMap(userItem{ID: "u-1", Email: "a@b.c", Name: "A", Role: "technician", CreatedAt: "2026-01-01T00:00:00.000000000Z"})
		fake := &fakeDynamo{getItem: func(in *dynamodb.GetItemInput) (*dynamodb.GetItemOutput, error) {
			if aws.ToString(in.TableName) != "users-t" {
				t.Fatalf("expected users read, got %s", aws.ToString(in.TableName))
			}
			return &dynamodb.GetItemOutput{Item: av}, nil
		}}
		got, err := NewInviteDynamoRepository(fake, "invites-t", "users-t").Redeem(ctx, "inv-1", user)
		if err != nil {
			t.Fatalf("redeem: %v", err)
		}
		if got.Role != entities.RoleTechnician || got.CreatedAt.Year() != 2026 || got.CreatedAt.Month() != time.January {
			t.Fatalf("expected stored binding, got %+v", got)
		}

		if len(fake.transacts) != 1 || len(fake.transacts[0].TransactItems) != 2 {
			t.Fatalf("expected one transaction with two items, got %+v", fake.transacts)
		}
		inv := fake.transacts[0].TransactItems[0].Update
		if inv == nil || aws.ToString(inv.TableName) != "invites-t" {
			t.Fatalf("expected invite update, got %+v", inv)
		}
		if aws.ToString(inv.ConditionExpression) != "attribute_exists(#id) AND #used = :false" {
			t.Fatalf("unexpected condition: %s", aws.ToString(inv.ConditionExpression))
		}
		usr := fake.transacts[0].TransactItems[1].Update
		if usr == nil || aws.ToString(usr.TableName) != "users-t" {
			t.Fatalf("expected user update, got %+v", usr)
		}
		if !strings.Contains(aws.ToString(usr.UpdateExpression), "if_not_exists(#created_at, :created_at)") {
			t.Fatalf("unexpected user update: %s", aws.ToString(usr.UpdateExpression))
		}
		if role := usr.ExpressionAttributeValues[":role"].(*types.AttributeValueMemberS).Value; role != "technician" {
			t.Fatalf("unexpected role %q", role)
		}
	})

	t.Run("used invite cancels the transaction", func(t *testing.T) {
		fake := &fakeDynamo{transact: func(*dynamodb.TransactWriteItemsInput) (*dynamodb.TransactWriteItemsOutput, error) {
			return nil, &types.TransactionCanceledException{CancellationReasons: []types.CancellationReason{
				{Code: aws.String("ConditionalCheckFailed")},
				{Code: aws.String("None")},
			}}
		}}
		_, err := NewInviteDynamoRepository(fake, "", "").Redeem(ctx, "inv-1", user)
		if !errors.Is(err, interfaces.ErrConditionFailed) {
			t.Fatalf("expected ErrConditionFailed, got %v", err)
		}
	})
}
