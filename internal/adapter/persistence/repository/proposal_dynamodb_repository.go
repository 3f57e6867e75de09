package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"corretora_xpto/internal/domain/entities"
	"corretora_xpto/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultProposalsTableName = "proposals"
	proposalsCreatorIDIndex   = "creator_id-index"
)

type proposalItem struct {
	ID              string  `dynamodbav:"id"`
	Code            string  `dynamodbav:"code"`
	CNPJ            string  `dynamodbav:"cnpj"`
	Operator        string  `dynamodbav:"operator"`
	ConsultantName  string  `dynamodbav:"consultant_name"`
	ConsultantEmail string  `dynamodbav:"consultant_email"`
	Quantity        int     `dynamodbav:"quantity"`
	Value           float64 `dynamodbav:"value"`
	TargetDate      string  `dynamodbav:"target_date,omitempty"`
	Notes           string  `dynamodbav:"notes,omitempty"`
	Status          string  `dynamodbav:"status"`
	CreatorID       string  `dynamodbav:"creator_id"`
	HandlerID       string  `dynamodbav:"handler_id,omitempty"`
	HandledAt       string  `dynamodbav:"handled_at,omitempty"`
	CreatedAt       string  `dynamodbav:"created_at"`
	CreatedAtUnix   int64   `dynamodbav:"created_at_unix"`
}

// ProposalDynamoRepository persists Proposal entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: creator_id-index (PK: creator_id)
//
// handler_id is stored with omitempty on purpose: an unclaimed proposal has
// no handler_id attribute, so the claim can be expressed as a single
// conditional update on attribute_not_exists(handler_id). That one condition
// is what guarantees at-most-one handler without a read-then-write window.

type ProposalDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IProposalRepository = (*ProposalDynamoRepository)(nil)

func NewProposalDynamoRepository(ddb *dynamodb.Client) *ProposalDynamoRepository {
	return &ProposalDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("PROPOSALS_TABLE", defaultProposalsTableName),
	}
}

func (r *ProposalDynamoRepository) Create(ctx context.Context, p entities.Proposal) (entities.Proposal, error) {
	it := toProposalItem(p)
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.Proposal{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.Proposal{}, err
	}
	return p, nil
}

func (r *ProposalDynamoRepository) GetByID(ctx context.Context, id string) (entities.Proposal, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Proposal{}, err
	}
	if len(out.Item) == 0 {
		return entities.Proposal{}, nil
	}

	var it proposalItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Proposal{}, err
	}
	return fromProposalItem(it), nil
}

// Claim assigns the handler with one conditional write. A lost race and a
// missing row both surface as ErrConditionFailed; the caller disambiguates
// with a follow-up read.
func (r *ProposalDynamoRepository) Claim(ctx context.Context, id, handlerID string, at time.Time) (entities.Proposal, error) {
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression: aws.String("attribute_exists(#id) AND attribute_not_exists(#handler_id)"),
		UpdateExpression:    aws.String("SET #handler_id = :handler_id, #handled_at = :handled_at"),
		ExpressionAttributeNames: map[string]string{
			"#id":         "id",
			"#handler_id": "handler_id",
			"#handled_at": "handled_at",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":handler_id": &types.AttributeValueMemberS{Value: handlerID},
			":handled_at": &types.AttributeValueMemberS{Value: at.UTC().Format(time.RFC3339Nano)},
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.Proposal{}, interfaces.ErrConditionFailed
		}
		return entities.Proposal{}, err
	}

	var it proposalItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Proposal{}, err
	}
	return fromProposalItem(it), nil
}

// Patch applies a sparse update, optionally folding in an implicit claim or
// a current-handler guard as part of the same conditional write.
func (r *ProposalDynamoRepository) Patch(ctx context.Context, id string, patch entities.ProposalPatch) (entities.Proposal, error) {
	sets := []string{}
	names := map[string]string{"#id": "id"}
	values := map[string]types.AttributeValue{}
	conditions := []string{"attribute_exists(#id)"}

	set := func(field string, av types.AttributeValue) {
		sets = append(sets, fmt.Sprintf("#%s = :%s", field, field))
		names["#"+field] = field
		values[":"+field] = av
	}

	if patch.Status != nil {
		set("status", &types.AttributeValueMemberS{Value: string(*patch.Status)})
	}
	if patch.Quantity != nil {
		set("quantity", &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", *patch.Quantity)})
	}
	if patch.Value != nil {
		set("value", &types.AttributeValueMemberN{Value: floatToString(*patch.Value)})
	}
	if patch.TargetDate != nil {
		set("target_date", &types.AttributeValueMemberS{Value: patch.TargetDate.UTC().Format(time.RFC3339Nano)})
	}
	if patch.Operator != nil {
		set("operator", &types.AttributeValueMemberS{Value: *patch.Operator})
	}
	if patch.ConsultantName != nil {
		set("consultant_name", &types.AttributeValueMemberS{Value: *patch.ConsultantName})
	}
	if patch.ConsultantEmail != nil {
		set("consultant_email", &types.AttributeValueMemberS{Value: *patch.ConsultantEmail})
	}
	if patch.Notes != nil {
		set("notes", &types.AttributeValueMemberS{Value: *patch.Notes})
	}

	if patch.ClaimHandlerID != "" {
		names["#handler_id"] = "handler_id"
		names["#handled_at"] = "handled_at"
		values[":claim_handler_id"] = &types.AttributeValueMemberS{Value: patch.ClaimHandlerID}
		values[":claim_handled_at"] = &types.AttributeValueMemberS{Value: patch.ClaimHandledAt.UTC().Format(time.RFC3339Nano)}
		sets = append(sets, "#handler_id = :claim_handler_id", "#handled_at = :claim_handled_at")
		conditions = append(conditions, "attribute_not_exists(#handler_id)")
	} else if patch.RequireHandlerID != "" {
		names["#handler_id"] = "handler_id"
		values[":require_handler_id"] = &types.AttributeValueMemberS{Value: patch.RequireHandlerID}
		conditions = append(conditions, "#handler_id = :require_handler_id")
	}

	if len(sets) == 0 {
		return r.GetByID(ctx, id)
	}

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression:       aws.String(strings.Join(conditions, " AND ")),
		UpdateExpression:          aws.String("SET " + strings.Join(sets, ", ")),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.Proposal{}, interfaces.ErrConditionFailed
		}
		return entities.Proposal{}, err
	}

	var it proposalItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Proposal{}, err
	}
	return fromProposalItem(it), nil
}

// ListByCreatedRange scans for proposals created inside [start, end]. The
// reporting path is bounded by date range, so a filtered scan is acceptable
// here; creation timestamps are mirrored into a numeric attribute because
// RFC3339Nano strings with variable fraction width do not compare reliably.
func (r *ProposalDynamoRepository) ListByCreatedRange(ctx context.Context, start, end time.Time) ([]entities.Proposal, error) {
	var proposals []entities.Proposal
	var lastKey map[string]types.AttributeValue

	for {
		out, err := r.ddb.Scan(ctx, &dynamodb.ScanInput{
			TableName:        aws.String(r.tableName),
			FilterExpression: aws.String("#created_at_unix BETWEEN :start AND :end"),
			ExpressionAttributeNames: map[string]string{
				"#created_at_unix": "created_at_unix",
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":start": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", start.UTC().UnixNano())},
				":end":   &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", end.UTC().UnixNano())},
			},
			ExclusiveStartKey: lastKey,
		})
		if err != nil {
			return nil, err
		}
		for _, raw := range out.Items {
			var it proposalItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, err
			}
			proposals = append(proposals, fromProposalItem(it))
		}
		if out.LastEvaluatedKey == nil {
			break
		}
		lastKey = out.LastEvaluatedKey
	}
	return proposals, nil
}

func (r *ProposalDynamoRepository) ListByCreatorAndStatus(ctx context.Context, creatorID string, status entities.ProposalStatus) ([]entities.Proposal, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(proposalsCreatorIDIndex),
		KeyConditionExpression: aws.String("creator_id = :cid"),
		FilterExpression:       aws.String("#status = :status"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":cid":    &types.AttributeValueMemberS{Value: creatorID},
			":status": &types.AttributeValueMemberS{Value: string(status)},
		},
	})
	if err != nil {
		return nil, err
	}

	proposals := make([]entities.Proposal, 0, len(out.Items))
	for _, raw := range out.Items {
		var it proposalItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return nil, err
		}
		proposals = append(proposals, fromProposalItem(it))
	}
	return proposals, nil
}

func toProposalItem(p entities.Proposal) proposalItem {
	it := proposalItem{
		ID:              p.ID,
		Code:            p.Code,
		CNPJ:            p.CNPJ,
		Operator:        p.Operator,
		ConsultantName:  p.ConsultantName,
		ConsultantEmail: p.ConsultantEmail,
		Quantity:        p.Quantity,
		Value:           p.Value,
		Notes:           p.Notes,
		Status:          string(p.Status),
		CreatorID:       p.CreatorID,
		HandlerID:       p.HandlerID,
		CreatedAt:       p.CreatedAt.UTC().Format(time.RFC3339Nano),
		CreatedAtUnix:   p.CreatedAt.UTC().UnixNano(),
	}
	if !p.TargetDate.IsZero() {
		it.TargetDate = p.TargetDate.UTC().Format(time.RFC3339Nano)
	}
	if !p.HandledAt.IsZero() {
		it.HandledAt = p.HandledAt.UTC().Format(time.RFC3339Nano)
	}
	return it
}

func fromProposalItem(it proposalItem) entities.Proposal {
	targetDate, _ := time.Parse(time.RFC3339Nano, it.TargetDate)
	handledAt, _ := time.Parse(time.RFC3339Nano, it.HandledAt)
	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	return entities.Proposal{
		ID:              it.ID,
		Code:            it.Code,
		CNPJ:            it.CNPJ,
		Operator:        it.Operator,
		ConsultantName:  it.ConsultantName,
		ConsultantEmail: it.ConsultantEmail,
		Quantity:        it.Quantity,
		Value:           it.Value,
		TargetDate:      targetDate,
		Notes:           it.Notes,
		Status:          entities.ProposalStatus(it.Status),
		CreatorID:       it.CreatorID,
		HandlerID:       it.HandlerID,
		HandledAt:       handledAt,
		CreatedAt:       createdAt,
	}
}
