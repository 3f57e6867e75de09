package repository

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"corretora_xpto/internal/domain/entities"
	"corretora_xpto/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultAuditTableName = "proposal_audit"
	auditProposalIDIndex  = "proposal_id-index"
)

type auditItem struct {
	ID         string `dynamodbav:"id"`
	ProposalID string `dynamodbav:"proposal_id"`
	ActorID    string `dynamodbav:"actor_id"`
	Changes    string `dynamodbav:"changes"`
	CreatedAt  string `dynamodbav:"created_at"`
}

// AuditDynamoRepository persists AuditEntry rows in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: proposal_id-index (PK: proposal_id)
//
// Rows are append-only: the only write is a create-if-absent PutItem. The
// change set is stored as a JSON document to keep before/after values
// exactly as recorded.

type AuditDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IAuditRepository = (*AuditDynamoRepository)(nil)

func NewAuditDynamoRepository(ddb *dynamodb.Client) *AuditDynamoRepository {
	return &AuditDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("AUDIT_TABLE", defaultAuditTableName),
	}
}

func (r *AuditDynamoRepository) Append(ctx context.Context, e entities.AuditEntry) (entities.AuditEntry, error) {
	changes, err := json.Marshal(e.Changes)
	if err != nil {
		return entities.AuditEntry{}, err
	}
	it := auditItem{
		ID:         e.ID,
		ProposalID: e.ProposalID,
		ActorID:    e.ActorID,
		Changes:    string(changes),
		CreatedAt:  e.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.AuditEntry{}, err
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
		return entities.AuditEntry{}, err
	}
	return e, nil
}

// ListByProposalID returns the proposal's audit trail ordered by creation
// time, ties broken by entry id so replays are deterministic.
func (r *AuditDynamoRepository) ListByProposalID(ctx context.Context, proposalID string) ([]entities.AuditEntry, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(auditProposalIDIndex),
		KeyConditionExpression: aws.String("proposal_id = :pid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pid": &types.AttributeValueMemberS{Value: proposalID},
		},
	})
	if err != nil {
		return nil, err
	}

	entries := make([]entities.AuditEntry, 0, len(out.Items))
	for _, raw := range out.Items {
		var it auditItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return nil, err
		}
		entry, err := fromAuditItem(it)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].CreatedAt.Equal(entries[j].CreatedAt) {
			return entries[i].ID < entries[j].ID
		}
		return entries[i].CreatedAt.Before(entries[j].CreatedAt)
	})
	return entries, nil
}

func fromAuditItem(it auditItem) (entities.AuditEntry, error) {
	var changes entities.ChangeSet
	if it.Changes != "" {
		if err := json.Unmarshal([]byte(it.Changes), &changes); err != nil {
			return entities.AuditEntry{}, err
		}
	}
	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	return entities.AuditEntry{
		ID:         it.ID,
		ProposalID: it.ProposalID,
		ActorID:    it.ActorID,
		Changes:    changes,
		CreatedAt:  createdAt,
	}, nil
}
