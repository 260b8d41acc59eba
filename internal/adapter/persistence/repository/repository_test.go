package repository

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"polarizados_ya/internal/domain/entities"
	"polarizados_ya/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

func mustMarshal(t *testing.T, v any) map[string]types.AttributeValue {
	t.Helper()
	av, err := attributevalue.MarshalMap(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return av
}

func TestUserRepository_CreateRejectsExistingID(t *testing.T) {
	ddb := &fakeDynamo{}
	repo := NewUserDynamoRepository(ddb, "")

	if _, err := repo.Create(context.Background(), entities.User{ID: "u-1", Email: "a@b.co"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	in := ddb.puts[0]
	if aws.ToString(in.TableName) != "users" {
		t.Fatalf("expected default table users, got %s", aws.ToString(in.TableName))
	}
	if aws.ToString(in.ConditionExpression) != "attribute_not_exists(#id)" {
		t.Fatalf("unexpected condition: %s", aws.ToString(in.ConditionExpression))
	}
	if _, ok := in.Item["password_hash"]; !ok {
		t.Fatalf("expected password hash to be stored")
	}
}

func TestUserRepository_GetByEmail(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		repo := NewUserDynamoRepository(&fakeDynamo{}, "staff")
		u, err := repo.GetByEmail(context.Background(), "x@y.co")
		if err != nil || u.ID != "" {
			t.Fatalf("expected zero user, got %+v %v", u, err)
		}
	})

	t.Run("found via index", func(t *testing.T) {
		ddb := &fakeDynamo{queryPages: []*dynamodb.QueryOutput{{
			Items: []map[string]types.AttributeValue{mustMarshal(t, userItem{ID: "u-1", Email: "x@y.co", Role: "tecnico"})},
		}}}
		repo := NewUserDynamoRepository(ddb, "staff")

		u, err := repo.GetByEmail(context.Background(), "x@y.co")
		if err != nil || u.ID != "u-1" || u.Role != entities.UserRoleTecnico {
			t.Fatalf("unexpected result: %+v %v", u, err)
		}
		if aws.ToString(ddb.queries[0].IndexName) != usersEmailIndex || aws.ToString(ddb.queries[0].TableName) != "staff" {
			t.Fatalf("unexpected query: %+v", ddb.queries[0])
		}
	})
}

func TestVehicleRepository_GetByIDNotFound(t *testing.T) {
	repo := NewVehicleDynamoRepository(&fakeDynamo{}, "")
	v, err := repo.GetByID(context.Background(), "missing")
	if err != nil || v.ID != "" {
		t.Fatalf("expected zero vehicle, got %+v %v", v, err)
	}
}

func TestVehicleRepository_UpdateMissing(t *testing.T) {
	ddb := &fakeDynamo{putErr: &types.ConditionalCheckFailedException{}}
	repo := NewVehicleDynamoRepository(ddb, "")

	v, err := repo.Update(context.Background(), entities.Vehicle{ID: "v-1"})
	if err != nil || v.ID != "" {
		t.Fatalf("expected zero vehicle, got %+v %v", v, err)
	}
	if aws.ToString(ddb.puts[0].ConditionExpression) != "attribute_exists(#id)" {
		t.Fatalf("unexpected condition: %s", aws.ToString(ddb.puts[0].ConditionExpression))
	}
}

func TestVehicleRepository_ListFollowsPages(t *testing.T) {
	ddb := &fakeDynamo{scanPages: []*dynamodb.ScanOutput{
		{
			Items:            []map[string]types.AttributeValue{mustMarshal(t, vehicleItem{ID: "v-1", Status: "agendado"})},
			LastEvaluatedKey: idKey("v-1"),
		},
		{
			Items: []map[string]types.AttributeValue{mustMarshal(t, vehicleItem{ID: "v-2", Status: "agendado"})},
		},
	}}
	repo := NewVehicleDynamoRepository(ddb, "")

	out, err := repo.List(context.Background(), entities.VehicleStatusAgendado)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 2 || out[1].ID != "v-2" {
		t.Fatalf("expected both pages, got %+v", out)
	}
	if len(ddb.scans) != 2 || aws.ToString(ddb.scans[0].FilterExpression) != "#status = :status" {
		t.Fatalf("unexpected scans: %d", len(ddb.scans))
	}
}

func TestVehicleRepository_Count(t *testing.T) {
	ddb := &fakeDynamo{scanPages: []*dynamodb.ScanOutput{
		{Count: 3, LastEvaluatedKey: idKey("v-3")},
		{Count: 2},
	}}
	n, err := NewVehicleDynamoRepository(ddb, "").Count(context.Background())
	if err != nil || n != 5 {
		t.Fatalf("expected 5, got %d %v", n, err)
	}
	if ddb.scans[0].Select != types.SelectCount {
		t.Fatalf("expected COUNT select")
	}
}

func TestAppointmentRepository_ListByDateUsesIndex(t *testing.T) {
	ddb := &fakeDynamo{queryPages: []*dynamodb.QueryOutput{{
		Items: []map[string]types.AttributeValue{mustMarshal(t, appointmentItem{ID: "a-1", Date: "2026-05-04", Services: []string{"polarizado"}})},
	}}}
	repo := NewAppointmentDynamoRepository(ddb, "")

	out, err := repo.List(context.Background(), "2026-05-04")
	if err != nil || len(out) != 1 || out[0].Services[0] != entities.ServicePolarizado {
		t.Fatalf("unexpected result: %+v %v", out, err)
	}
	if aws.ToString(ddb.queries[0].IndexName) != appointmentsDateIndex {
		t.Fatalf("expected date index")
	}
	if len(ddb.scans) != 0 {
		t.Fatalf("expected no scan")
	}
}

func TestQuoteRepository_ApproveOnlyWhilePending(t *testing.T) {
	t.Run("condition failed", func(t *testing.T) {
		ddb := &fakeDynamo{updateErr: &types.ConditionalCheckFailedException{}}
		repo := NewQuoteDynamoRepository(ddb, "")

		q, err := repo.Approve(context.Background(), "q-1", time.Now(), "", "")
		if err != nil || q.ID != "" {
			t.Fatalf("expected zero quote, got %+v %v", q, err)
		}
		cond := aws.ToString(ddb.updates[0].ConditionExpression)
		if cond != "attribute_exists(#id) AND #status = :pending" {
			t.Fatalf("unexpected condition: %s", cond)
		}
		if strings.Contains(aws.ToString(ddb.updates[0].UpdateExpression), "signature_url") {
			t.Fatalf("signature should not be written when empty")
		}
	})

	t.Run("approved", func(t *testing.T) {
		at := time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)
		ddb := &fakeDynamo{updateOut: &dynamodb.UpdateItemOutput{
			Attributes: mustMarshal(t, quoteItem{ID: "q-1", Status: "approved", ApprovedAt: formatTime(at), SignatureURL: "sig", Total: 119}),
		}}
		repo := NewQuoteDynamoRepository(ddb, "")

		q, err := repo.Approve(context.Background(), "q-1", at, "sig", "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if q.Status != entities.QuoteStatusApproved || q.ApprovedAt == nil || !q.ApprovedAt.Equal(at) || q.Total != 119 {
			t.Fatalf("unexpected quote: %+v", q)
		}
	})

	t.Run("other errors surface", func(t *testing.T) {
		ddb := &fakeDynamo{updateErr: errors.New("throttled")}
		if _, err := NewQuoteDynamoRepository(ddb, "").Approve(context.Background(), "q-1", time.Now(), "", ""); err == nil {
			t.Fatalf("expected error")
		}
	})
}

func TestServiceOrderRepository_UpdateStatus(t *testing.T) {
	at := time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)

	t.Run("stamps started_at", func(t *testing.T) {
		ddb := &fakeDynamo{updateOut: &dynamodb.UpdateItemOutput{
			Attributes: mustMarshal(t, serviceOrderItem{ID: "o-1", Status: "en_proceso", StartedAt: formatTime(at)}),
		}}
		repo := NewServiceOrderDynamoRepository(ddb, "")

		o, err := repo.UpdateStatus(context.Background(), "o-1", entities.ServiceStatusAgendado, entities.ServiceStatusEnProceso, at)
		if err != nil || o.StartedAt == nil || o.CompletedAt != nil {
			t.Fatalf("unexpected result: %+v %v", o, err)
		}
		in := ddb.updates[0]
		if !strings.Contains(aws.ToString(in.UpdateExpression), "#started_at = :at") {
			t.Fatalf("unexpected update: %s", aws.ToString(in.UpdateExpression))
		}
		if aws.ToString(in.ConditionExpression) != "attribute_exists(#id) AND #status = :from" {
			t.Fatalf("unexpected condition: %s", aws.ToString(in.ConditionExpression))
		}
		if from := in.ExpressionAttributeValues[":from"].(*types.AttributeValueMemberS).Value; from != "agendado" {
			t.Fatalf("unexpected from: %s", from)
		}
	})

	t.Run("stale status", func(t *testing.T) {
		ddb := &fakeDynamo{updateErr: &types.ConditionalCheckFailedException{}}
		o, err := NewServiceOrderDynamoRepository(ddb, "").UpdateStatus(context.Background(), "o-1", entities.ServiceStatusEnRevision, entities.ServiceStatusTerminado, at)
		if err != nil || o.ID != "" {
			t.Fatalf("expected zero order, got %+v %v", o, err)
		}
		if !strings.Contains(aws.ToString(ddb.updates[0].UpdateExpression), "#completed_at = :at") {
			t.Fatalf("expected completed_at stamp")
		}
	})
}

func TestServiceOrderRepository_ListPicksIndex(t *testing.T) {
	ddb := &fakeDynamo{}
	repo := NewServiceOrderDynamoRepository(ddb, "")

	if _, err := repo.List(context.Background(), interfaces.ServiceOrderFilter{TechnicianID: "tec-1", Status: entities.ServiceStatusAgendado}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if aws.ToString(ddb.queries[0].IndexName) != serviceOrdersTechnicianIndex || aws.ToString(ddb.queries[0].FilterExpression) != "#status = :status" {
		t.Fatalf("unexpected query: %+v", ddb.queries[0])
	}

	if _, err := repo.List(context.Background(), interfaces.ServiceOrderFilter{Status: entities.ServiceStatusAgendado}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if aws.ToString(ddb.queries[1].IndexName) != serviceOrdersStatusIndex {
		t.Fatalf("expected status index")
	}

	if _, err := repo.List(context.Background(), interfaces.ServiceOrderFilter{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ddb.scans) != 1 {
		t.Fatalf("expected a scan without filters")
	}
}

func TestServiceOrderRepository_CountCompletedOn(t *testing.T) {
	ddb := &fakeDynamo{queryPages: []*dynamodb.QueryOutput{{Count: 4}}}
	n, err := NewServiceOrderDynamoRepository(ddb, "").CountCompletedOn(context.Background(), "2026-05-04")
	if err != nil || n != 4 {
		t.Fatalf("expected 4, got %d %v", n, err)
	}
	in := ddb.queries[0]
	if aws.ToString(in.FilterExpression) != "begins_with(#completed_at, :day)" || in.Select != types.SelectCount {
		t.Fatalf("unexpected query: %+v", in)
	}
	if status := in.ExpressionAttributeValues[":status"].(*types.AttributeValueMemberS).Value; status != "terminado" {
		t.Fatalf("unexpected status: %s", status)
	}
}

func TestServiceOrderItemRoundTrip(t *testing.T) {
	hours := 2.5
	done := time.Date(2026, 5, 4, 18, 0, 0, 0, time.UTC)
	o := entities.ServiceOrder{
		ID:             "o-1",
		VehicleID:      "v-1",
		Services:       []entities.ServiceCode{entities.ServiceNanoceramica},
		Status:         entities.ServiceStatusTerminado,
		EstimatedHours: &hours,
		CompletedAt:    &done,
		CreatedAt:      done.Add(-time.Hour),
	}

	var back serviceOrderItem
	if err := attributevalue.UnmarshalMap(mustMarshal(t, toServiceOrderItem(o)), &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	got := fromServiceOrderItem(back)
	if got.EstimatedHours == nil || *got.EstimatedHours != 2.5 || got.StartedAt != nil || !got.CompletedAt.Equal(done) {
		t.Fatalf("unexpected order: %+v", got)
	}
}

func TestNotificationRepository(t *testing.T) {
	t.Run("newest first with limit", func(t *testing.T) {
		ddb := &fakeDynamo{}
		if _, err := NewNotificationDynamoRepository(ddb, "").ListByRecipient(context.Background(), "u-1", 100); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		in := ddb.queries[0]
		if aws.ToBool(in.ScanIndexForward) || aws.ToInt32(in.Limit) != 100 {
			t.Fatalf("unexpected query: %+v", in)
		}
	})

	t.Run("mark read scoped to recipient", func(t *testing.T) {
		ddb := &fakeDynamo{updateErr: &types.ConditionalCheckFailedException{}}
		n, err := NewNotificationDynamoRepository(ddb, "").MarkRead(context.Background(), "n-1", "u-2")
		if err != nil || n.ID != "" {
			t.Fatalf("expected zero notification, got %+v %v", n, err)
		}
		if cond := aws.ToString(ddb.updates[0].ConditionExpression); cond != "attribute_exists(#id) AND #recipient_id = :recipient_id" {
			t.Fatalf("unexpected condition: %s", cond)
		}
	})

	t.Run("count unread", func(t *testing.T) {
		ddb := &fakeDynamo{queryPages: []*dynamodb.QueryOutput{{Count: 7}}}
		n, err := NewNotificationDynamoRepository(ddb, "").CountUnread(context.Background(), "u-1")
		if err != nil || n != 7 {
			t.Fatalf("expected 7, got %d %v", n, err)
		}
	})
}

func TestInspectionRepository_CreateStoresKeysOnly(t *testing.T) {
	ddb := &fakeDynamo{}
	repo := NewInspectionDynamoRepository(ddb, "")

	_, err := repo.Create(context.Background(), entities.Inspection{
		ID:        "i-1",
		VehicleID: "v-1",
		Items:     []entities.InspectionItem{{Area: "hood", Condition: entities.ConditionGood}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	photos, ok := ddb.puts[0].Item["photos"].(*types.AttributeValueMemberL)
	if !ok || len(photos.Value) != 0 {
		t.Fatalf("expected empty photo list, got %#v", ddb.puts[0].Item["photos"])
	}
}
