package repository

import (
	"context"
	"fmt"
	"strings"

	"repairdesk/internal/domain/entities"
	"repairdesk/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultJobsTableName    = "jobs"
	defaultHistoryTableName = "job_status_history"
	jobsTechnicianIndex     = "technician_id-index"
	timelineJobEndKey       = "job_end"

	// Fixed width so that history sort keys order lexicographically.
	sortableTime = "2006-01-02T15:04:05.000000000Z"
)

type qcItem struct {
	Display      string `dynamodbav:"display,omitempty"`
	FrontCamera  string `dynamodbav:"front_camera,omitempty"`
	BackCamera   string `dynamodbav:"back_camera,omitempty"`
	FaceID       string `dynamodbav:"face_id,omitempty"`
	EarSpeaker   string `dynamodbav:"ear_speaker,omitempty"`
	Microphone   string `dynamodbav:"microphone,omitempty"`
	DownSpeaker  string `dynamodbav:"down_speaker,omitempty"`
	Vibrator     string `dynamodbav:"vibrator,omitempty"`
	VolumeButton string `dynamodbav:"volume_button,omitempty"`
	PowerButton  string `dynamodbav:"power_button,omitempty"`
	Charging     string `dynamodbav:"charging,omitempty"`
	IMEI         string `dynamodbav:"imei"`
	Model        string `dynamodbav:"model"`
	Comments     string `dynamodbav:"comments,omitempty"`
}

type jobItem struct {
	ID               string            `dynamodbav:"id"`
	CustomerName     string            `dynamodbav:"customer_name"`
	CustomerPhone    string            `dynamodbav:"customer_phone"`
	CustomerAltPhone string            `dynamodbav:"customer_alt_phone,omitempty"`
	CustomerAddress  string            `dynamodbav:"customer_address"`
	CustomerLocation string            `dynamodbav:"customer_location,omitempty"`
	DeviceType       string            `dynamodbav:"device_type"`
	DeviceIssue      string            `dynamodbav:"device_issue"`
	Notes            string            `dynamodbav:"notes,omitempty"`
	TimeSlot         string            `dynamodbav:"time_slot,omitempty"`
	TechnicianID     string            `dynamodbav:"technician_id,omitempty"`
	AssignedBy       string            `dynamodbav:"assigned_by,omitempty"`
	Status           string            `dynamodbav:"status"`
	Timeline         map[string]string `dynamodbav:"timeline"`
	QCBefore         *qcItem           `dynamodbav:"qc_before,omitempty"`
	QCAfter          *qcItem           `dynamodbav:"qc_after,omitempty"`
	ServiceCharge    string            `dynamodbav:"service_charge"`
	PartsCost        string            `dynamodbav:"parts_cost"`
	GST              string            `dynamodbav:"gst"`
	Total            string            `dynamodbav:"total"`
	PaymentMethod    string            `dynamodbav:"payment_method,omitempty"`
	CreatedBy        string            `dynamodbav:"created_by"`
	CreatedAt        string            `dynamodbav:"created_at"`
	UpdatedAt        string            `dynamodbav:"updated_at"`
}

type historyItem struct {
	JobID     string `dynamodbav:"job_id"`
	SK        string `dynamodbav:"sk"`
	ID        string `dynamodbav:"id"`
	Status    string `dynamodbav:"status"`
	ChangedBy string `dynamodbav:"changed_by"`
	ChangedAt string `dynamodbav:"changed_at"`
}

// JobDynamoRepository persists jobs and their status history in DynamoDB.
//
// Table requirements:
//   - jobs: PK id (string), GSI technician_id-index on technician_id
//   - history: PK job_id (string), SK sk (string, "<changed_at>#<id>")
//
// Every status change is a TransactWriteItems of an Update on the job,
// conditioned on the current status, and a Put of the history entry.
type JobDynamoRepository struct {
	ddb          DynamoAPI
	jobsTable    string
	historyTable string
}

var (
	_ interfaces.IJobRepository     = (*JobDynamoRepository)(nil)
	_ interfaces.IHistoryRepository = (*JobDynamoRepository)(nil)
)

func NewJobDynamoRepository(ddb DynamoAPI, jobsTable, historyTable string) *JobDynamoRepository {
	return &JobDynamoRepository{
		ddb:          ddb,
		jobsTable:    tableOrDefault(jobsTable, defaultJobsTableName),
		historyTable: tableOrDefault(historyTable, defaultHistoryTableName),
	}
}

func (r *JobDynamoRepository) Create(ctx context.Context, job entities.Job, first entities.StatusHistoryEntry) (entities.Job, error) {
	jobAV, err := attributevalue.MarshalMap(toJobItem(job))
	if err != nil {
		return entities.Job{}, err
	}
	histAV, err := attributevalue.MarshalMap(toHistoryItem(first))
	if err != nil {
		return entities.Job{}, err
	}

	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Put: &types.Put{
				TableName:                aws.String(r.jobsTable),
				Item:                     jobAV,
				ConditionExpression:      aws.String("attribute_not_exists(#id)"),
				ExpressionAttributeNames: map[string]string{"#id": "id"},
			}},
			{Put: &types.Put{
				TableName:                aws.String(r.historyTable),
				Item:                     histAV,
				ConditionExpression:      aws.String("attribute_not_exists(#sk)"),
				ExpressionAttributeNames: map[string]string{"#sk": "sk"},
			}},
		},
	})
	if err != nil {
		return entities.Job{}, err
	}
	return job, nil
}

func (r *JobDynamoRepository) GetByID(ctx context.Context, id string) (entities.Job, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.jobsTable),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Job{}, err
	}
	if len(out.Item) == 0 {
		return entities.Job{}, nil
	}

	var it jobItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Job{}, err
	}
	return fromJobItem(it), nil
}

// List queries the technician index when the filter names a technician and
// scans otherwise. Both paths follow LastEvaluatedKey.
func (r *JobDynamoRepository) List(ctx context.Context, filter entities.JobFilter) ([]entities.Job, error) {
	var (
		filterExpr *string
		names      map[string]string
		values     map[string]types.AttributeValue
	)
	if filter.Status != "" {
		filterExpr = aws.String("#status = :status")
		names = map[string]string{"#status": "status"}
		values = map[string]types.AttributeValue{":status": &types.AttributeValueMemberS{Value: string(filter.Status)}}
	}

	var raws []map[string]types.AttributeValue
	var startKey map[string]types.AttributeValue
	for {
		var (
			items   []map[string]types.AttributeValue
			lastKey map[string]types.AttributeValue
		)
		if filter.TechnicianID != "" {
			qValues := mergeValues(values, map[string]types.AttributeValue{
				":tid": &types.AttributeValueMemberS{Value: filter.TechnicianID},
			})
			out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
				TableName:                 aws.String(r.jobsTable),
				IndexName:                 aws.String(jobsTechnicianIndex),
				KeyConditionExpression:    aws.String("technician_id = :tid"),
				FilterExpression:          filterExpr,
				ExpressionAttributeNames:  names,
				ExpressionAttributeValues: qValues,
				ExclusiveStartKey:         startKey,
			})
			if err != nil {
				return nil, err
			}
			items, lastKey = out.Items, out.LastEvaluatedKey
		} else {
			out, err := r.ddb.Scan(ctx, &dynamodb.ScanInput{
				TableName:                 aws.String(r.jobsTable),
				FilterExpression:          filterExpr,
				ExpressionAttributeNames:  names,
				ExpressionAttributeValues: values,
				ExclusiveStartKey:         startKey,
			})
			if err != nil {
				return nil, err
			}
			items, lastKey = out.Items, out.LastEvaluatedKey
		}
		raws = append(raws, items...)
		if len(lastKey) == 0 {
			break
		}
		startKey = lastKey
	}

	jobs := make([]entities.Job, 0, len(raws))
	for _, raw := range raws {
		var it jobItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return nil, err
		}
		jobs = append(jobs, fromJobItem(it))
	}
	return jobs, nil
}

func (r *JobDynamoRepository) ApplyStatusChange(ctx context.Context, change entities.StatusChange) (entities.Job, error) {
	histAV, err := attributevalue.MarshalMap(toHistoryItem(change.History))
	if err != nil {
		return entities.Job{}, err
	}
	updateExpr, values, names, err := buildStatusUpdate(change)
	if err != nil {
		return entities.Job{}, err
	}

	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Update: &types.Update{
				TableName: aws.String(r.jobsTable),
				Key: map[string]types.AttributeValue{
					"id": &types.AttributeValueMemberS{Value: change.JobID},
				},
				ConditionExpression:       aws.String("attribute_exists(#id) AND #status = :from"),
				UpdateExpression:          aws.String(updateExpr),
				ExpressionAttributeNames:  mergeNames(names, map[string]string{"#id": "id"}),
				ExpressionAttributeValues: values,
			}},
			{Put: &types.Put{
				TableName:                aws.String(r.historyTable),
				Item:                     histAV,
				ConditionExpression:      aws.String("attribute_not_exists(#sk)"),
				ExpressionAttributeNames: map[string]string{"#sk": "sk"},
			}},
		},
	})
	if err != nil {
		if isConditionFailed(err) {
			return entities.Job{}, interfaces.ErrConditionFailed
		}
		return entities.Job{}, err
	}
	return r.GetByID(ctx, change.JobID)
}

func (r *JobDynamoRepository) ListByJobID(ctx context.Context, jobID string) ([]entities.StatusHistoryEntry, error) {
	var entries []entities.StatusHistoryEntry
	var startKey map[string]types.AttributeValue
	for {
		out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
			TableName:              aws.String(r.historyTable),
			KeyConditionExpression: aws.String("job_id = :jid"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":jid": &types.AttributeValueMemberS{Value: jobID},
			},
			ScanIndexForward:  aws.Bool(true),
			ConsistentRead:    aws.Bool(true),
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, err
		}
		for _, raw := range out.Items {
			var it historyItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, err
			}
			entries = append(entries, fromHistoryItem(it))
		}
		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		startKey = out.LastEvaluatedKey
	}
	return entries, nil
}

func buildStatusUpdate(change entities.StatusChange) (string, map[string]types.AttributeValue, map[string]string, error) {
	now := formatTime(change.At)
	sets := []string{"#status = :to", "#timeline.#step = :at", "#updated_at = :at"}
	names := map[string]string{
		"#status":     "status",
		"#timeline":   "timeline",
		"#step":       string(change.To),
		"#updated_at": "updated_at",
	}
	values := map[string]types.AttributeValue{
		":from": &types.AttributeValueMemberS{Value: string(change.From)},
		":to":   &types.AttributeValueMemberS{Value: string(change.To)},
		":at":   &types.AttributeValueMemberS{Value: now},
	}

	if change.To == entities.JobStatusQCAfter {
		sets = append(sets, "#timeline.#job_end = :at")
		names["#job_end"] = timelineJobEndKey
	}
	if change.TechnicianID != "" {
		sets = append(sets, "#technician_id = :tid", "#assigned_by = :by")
		names["#technician_id"] = "technician_id"
		names["#assigned_by"] = "assigned_by"
		values[":tid"] = &types.AttributeValueMemberS{Value: change.TechnicianID}
		values[":by"] = &types.AttributeValueMemberS{Value: change.AssignedBy}
	}
	if change.QCReport != nil {
		var attr string
		switch change.To {
		case entities.JobStatusQCBefore:
			attr = "qc_before"
		case entities.JobStatusQCAfter:
			attr = "qc_after"
		default:
			return "", nil, nil, fmt.Errorf("qc report on %s", change.To)
		}
		qcAV, err := attributevalue.Marshal(toQCItem(change.QCReport))
		if err != nil {
			return "", nil, nil, err
		}
		sets = append(sets, "#qc = :qc")
		names["#qc"] = attr
		values[":qc"] = qcAV
	}
	if f := change.Financials; f != nil {
		sets = append(sets, "#service_charge = :sc", "#parts_cost = :pc", "#gst = :gst", "#total = :total")
		names["#service_charge"] = "service_charge"
		names["#parts_cost"] = "parts_cost"
		names["#gst"] = "gst"
		names["#total"] = "total"
		values[":sc"] = &types.AttributeValueMemberS{Value: floatToString(f.ServiceCharge)}
		values[":pc"] = &types.AttributeValueMemberS{Value: floatToString(f.PartsCost)}
		values[":gst"] = &types.AttributeValueMemberS{Value: floatToString(f.GST)}
		values[":total"] = &types.AttributeValueMemberS{Value: floatToString(f.Total)}
	}
	if change.PaymentMethod != "" {
		sets = append(sets, "#payment_method = :pm")
		names["#payment_method"] = "payment_method"
		values[":pm"] = &types.AttributeValueMemberS{Value: string(change.PaymentMethod)}
	}
	return "SET " + strings.Join(sets, ", "), values, names, nil
}

func mergeValues(a, b map[string]types.AttributeValue) map[string]types.AttributeValue {
	out := make(map[string]types.AttributeValue, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}

func toJobItem(j entities.Job) jobItem {
	timeline := make(map[string]string)
	for _, s := range entities.JobStatusOrder {
		if at := j.Timeline.At(s); at != nil {
			timeline[string(s)] = formatTime(*at)
		}
	}
	if end := j.Timeline.JobEndAt; end != nil {
		timeline[timelineJobEndKey] = formatTime(*end)
	}
	return jobItem{
		ID:               j.ID,
		CustomerName:     j.Customer.Name,
		CustomerPhone:    j.Customer.Phone,
		CustomerAltPhone: j.Customer.AltPhone,
		CustomerAddress:  j.Customer.Address,
		CustomerLocation: j.Customer.Location,
		DeviceType:       j.Device.Type,
		DeviceIssue:      j.Device.Issue,
		Notes:            j.Notes,
		TimeSlot:         j.TimeSlot,
		TechnicianID:     j.TechnicianID,
		AssignedBy:       j.AssignedBy,
		Status:           string(j.Status),
		Timeline:         timeline,
		QCBefore:         toQCItem(j.QCBefore),
		QCAfter:          toQCItem(j.QCAfter),
		ServiceCharge:    floatToString(j.Financials.ServiceCharge),
		PartsCost:        floatToString(j.Financials.PartsCost),
		GST:              floatToString(j.Financials.GST),
		Total:            floatToString(j.Financials.Total),
		PaymentMethod:    string(j.PaymentMethod),
		CreatedBy:        j.CreatedBy,
		CreatedAt:        formatTime(j.CreatedAt),
		UpdatedAt:        formatTime(j.UpdatedAt),
	}
}

func fromJobItem(it jobItem) entities.Job {
	j := entities.Job{
		ID: it.ID,
		Customer: entities.Customer{
			Name:     it.CustomerName,
			Phone:    it.CustomerPhone,
			AltPhone: it.CustomerAltPhone,
			Address:  it.CustomerAddress,
			Location: it.CustomerLocation,
		},
		Device:       entities.Device{Type: it.DeviceType, Issue: it.DeviceIssue},
		Notes:        it.Notes,
		TimeSlot:     it.TimeSlot,
		TechnicianID: it.TechnicianID,
		AssignedBy:   it.AssignedBy,
		Status:       entities.JobStatus(it.Status),
		QCBefore:     fromQCItem(it.QCBefore),
		QCAfter:      fromQCItem(it.QCAfter),
		Financials: entities.Financials{
			ServiceCharge: stringToFloat(it.ServiceCharge),
			PartsCost:     stringToFloat(it.PartsCost),
			GST:           stringToFloat(it.GST),
			Total:         stringToFloat(it.Total),
		},
		PaymentMethod: entities.PaymentMethod(it.PaymentMethod),
		CreatedBy:     it.CreatedBy,
		CreatedAt:     parseTime(it.CreatedAt),
		UpdatedAt:     parseTime(it.UpdatedAt),
	}
	for key, at := range it.Timeline {
		if key == timelineJobEndKey {
			end := parseTime(at)
			j.Timeline.JobEndAt = &end
			continue
		}
		j.Timeline.Set(entities.JobStatus(key), parseTime(at))
	}
	return j
}

func toQCItem(q *entities.QCReport) *qcItem {
	if q == nil {
		return nil
	}
	return &qcItem{
		Display:      string(q.Display),
		FrontCamera:  string(q.FrontCamera),
		BackCamera:   string(q.BackCamera),
		FaceID:       string(q.FaceID),
		EarSpeaker:   string(q.EarSpeaker),
		Microphone:   string(q.Microphone),
		DownSpeaker:  string(q.DownSpeaker),
		Vibrator:     string(q.Vibrator),
		VolumeButton: string(q.VolumeButton),
		PowerButton:  string(q.PowerButton),
		Charging:     string(q.Charging),
		IMEI:         q.IMEI,
		Model:        q.Model,
		Comments:     q.Comments,
	}
}

func fromQCItem(it *qcItem) *entities.QCReport {
	if it == nil {
		return nil
	}
	return &entities.QCReport{
		Display:      entities.CheckResult(it.Display),
		FrontCamera:  entities.CheckResult(it.FrontCamera),
		BackCamera:   entities.CheckResult(it.BackCamera),
		FaceID:       entities.CheckResult(it.FaceID),
		EarSpeaker:   entities.CheckResult(it.EarSpeaker),
		Microphone:   entities.CheckResult(it.Microphone),
		DownSpeaker:  entities.CheckResult(it.DownSpeaker),
		Vibrator:     entities.CheckResult(it.Vibrator),
		VolumeButton: entities.CheckResult(it.VolumeButton),
		PowerButton:  entities.CheckResult(it.PowerButton),
		Charging:     entities.CheckResult(it.Charging),
		IMEI:         it.IMEI,
		Model:        it.Model,
		Comments:     it.Comments,
	}
}

func toHistoryItem(h entities.StatusHistoryEntry) historyItem {
	return historyItem{
		JobID:     h.JobID,
		SK:        h.ChangedAt.UTC().Format(sortableTime) + "#" + h.ID,
		ID:        h.ID,
		Status:    string(h.Status),
		ChangedBy: h.ChangedBy,
		ChangedAt: formatTime(h.ChangedAt),
	}
}

func fromHistoryItem(it historyItem) entities.StatusHistoryEntry {
	return entities.StatusHistoryEntry{
		ID:        it.ID,
		JobID:     it.JobID,
		Status:    entities.JobStatus(it.Status),
		ChangedBy: it.ChangedBy,
		ChangedAt: parseTime(it.ChangedAt),
	}
}
