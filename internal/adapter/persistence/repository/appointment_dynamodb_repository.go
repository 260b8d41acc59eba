package repository

import (
	"context"

	"polarizados_ya/internal/domain/entities"
	"polarizados_ya/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultAppointmentsTableName = "appointments"
	appointmentsDateIndex        = "date-index"
)

type appointmentItem struct {
	ID          string   `dynamodbav:"id"`
	VehicleID   string   `dynamodbav:"vehicle_id,omitempty"`
	ClientName  string   `dynamodbav:"client_name"`
	ClientPhone string   `dynamodbav:"client_phone"`
	ClientEmail string   `dynamodbav:"client_email,omitempty"`
	Plate       string   `dynamodbav:"plate,omitempty"`
	Brand       string   `dynamodbav:"brand,omitempty"`
	Model       string   `dynamodbav:"model,omitempty"`
	Date        string   `dynamodbav:"date"`
	TimeSlot    string   `dynamodbav:"time_slot"`
	Services    []string `dynamodbav:"services"`
	Notes       string   `dynamodbav:"notes,omitempty"`
	Status      string   `dynamodbav:"status"`
	CreatedAt   string   `dynamodbav:"created_at"`
	CreatedBy   string   `dynamodbav:"created_by"`
}

// AppointmentDynamoRepository persists appointments in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: date-index (PK: date)
type AppointmentDynamoRepository struct {
	ddb       DynamoDBAPI
	tableName string
}

var _ interfaces.IAppointmentRepository = (*AppointmentDynamoRepository)(nil)

func NewAppointmentDynamoRepository(ddb DynamoDBAPI, tableName string) *AppointmentDynamoRepository {
	return &AppointmentDynamoRepository{ddb: ddb, tableName: tableOrDefault(tableName, defaultAppointmentsTableName)}
}

func (r *AppointmentDynamoRepository) Create(ctx context.Context, a entities.Appointment) (entities.Appointment, error) {
	if err := putNew(ctx, r.ddb, r.tableName, toAppointmentItem(a)); err != nil {
		return entities.Appointment{}, err
	}
	return a, nil
}

func (r *AppointmentDynamoRepository) GetByID(ctx context.Context, id string) (entities.Appointment, error) {
	var it appointmentItem
	found, err := getByID(ctx, r.ddb, r.tableName, id, &it)
	if err != nil || !found {
		return entities.Appointment{}, err
	}
	return fromAppointmentItem(it), nil
}

func (r *AppointmentDynamoRepository) List(ctx context.Context, date string) ([]entities.Appointment, error) {
	var (
		raw []item
		err error
	)
	if date != "" {
		raw, err = queryAll(ctx, r.ddb, r.byDate(date))
	} else {
		raw, err = scanAll(ctx, r.ddb, &dynamodb.ScanInput{TableName: aws.String(r.tableName)})
	}
	if err != nil {
		return nil, err
	}
	return unmarshalAll(raw, fromAppointmentItem)
}

func (r *AppointmentDynamoRepository) UpdateStatus(ctx context.Context, id string, status entities.ServiceStatus) (entities.Appointment, error) {
	var it appointmentItem
	found, err := updateExisting(ctx, r.ddb, r.tableName, id,
		"SET #status = :status", "",
		map[string]types.AttributeValue{":status": str(string(status))},
		map[string]string{"#status": "status"},
		&it)
	if err != nil || !found {
		return entities.Appointment{}, err
	}
	return fromAppointmentItem(it), nil
}

func (r *AppointmentDynamoRepository) CountByDate(ctx context.Context, date string) (int, error) {
	return countQuery(ctx, r.ddb, r.byDate(date))
}

func (r *AppointmentDynamoRepository) byDate(date string) *dynamodb.QueryInput {
	return &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(appointmentsDateIndex),
		KeyConditionExpression: aws.String("#date = :date"),
		ExpressionAttributeNames: map[string]string{
			"#date": "date",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":date": str(date),
		},
	}
}

func toAppointmentItem(a entities.Appointment) appointmentItem {
	return appointmentItem{
		ID:          a.ID,
		VehicleID:   a.VehicleID,
		ClientName:  a.ClientName,
		ClientPhone: a.ClientPhone,
		ClientEmail: a.ClientEmail,
		Plate:       a.Plate,
		Brand:       a.Brand,
		Model:       a.Model,
		Date:        a.Date,
		TimeSlot:    a.TimeSlot,
		Services:    serviceCodesToStrings(a.Services),
		Notes:       a.Notes,
		Status:      string(a.Status),
		CreatedAt:   formatTime(a.CreatedAt),
		CreatedBy:   a.CreatedBy,
	}
}

func fromAppointmentItem(it appointmentItem) entities.Appointment {
	return entities.Appointment{
		ID:          it.ID,
		VehicleID:   it.VehicleID,
		ClientName:  it.ClientName,
		ClientPhone: it.ClientPhone,
		ClientEmail: it.ClientEmail,
		Plate:       it.Plate,
		Brand:       it.Brand,
		Model:       it.Model,
		Date:        it.Date,
		TimeSlot:    it.TimeSlot,
		Services:    stringsToServiceCodes(it.Services),
		Notes:       it.Notes,
		Status:      entities.ServiceStatus(it.Status),
		CreatedAt:   parseTime(it.CreatedAt),
		CreatedBy:   it.CreatedBy,
	}
}

func serviceCodesToStrings(codes []entities.ServiceCode) []string {
	out := make([]string, len(codes))
	for i, c := range codes {
		out[i] = string(c)
	}
	return out
}

func stringsToServiceCodes(ss []string) []entities.ServiceCode {
	out := make([]entities.ServiceCode, len(ss))
	for i, s := range ss {
		out[i] = entities.ServiceCode(s)
	}
	return out
}
