package repository

import (
	"context"
	"time"

	"repairdesk/internal/domain/entities"
	"repairdesk/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultInvitesTableName = "invites"
	invitesTokenIndex       = "token-index"
	invitesEmailIndex       = "email-index"
)

type inviteItem struct {
	ID        string `dynamodbav:"id"`
	Email     string `dynamodbav:"email"`
	Role      string `dynamodbav:"role"`
	Token     string `dynamodbav:"token"`
	ExpiresAt string `dynamodbav:"expires_at"`
	Used      bool   `dynamodbav:"used"`
	CreatedBy string `dynamodbav:"created_by"`
	CreatedAt string `dynamodbav:"created_at"`
}

// InviteDynamoRepository persists invites. Redemption also writes the
// users table.
//
// Table requirements:
//   - PK: id (string)
//   - GSI token-index: token
//   - GSI email-index: email
type InviteDynamoRepository struct {
	ddb        DynamoAPI
	tableName  string
	usersTable string
}

var _ interfaces.IInviteRepository = (*InviteDynamoRepository)(nil)

func NewInviteDynamoRepository(ddb DynamoAPI, table, usersTable string) *InviteDynamoRepository {
	return &InviteDynamoRepository{
		ddb:        ddb,
		tableName:  tableOrDefault(table, defaultInvitesTableName),
		usersTable: tableOrDefault(usersTable, defaultUsersTableName),
	}
}

func (r *InviteDynamoRepository) Create(ctx context.Context, inv entities.Invite) (entities.Invite, error) {
	av, err := attributevalue.MarshalMap(toInviteItem(inv))
	if err != nil {
		return entities.Invite{}, err
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
		return entities.Invite{}, err
	}
	return inv, nil
}

func (r *InviteDynamoRepository) GetByToken(ctx context.Context, token string) (entities.Invite, error) {
	invites, err := r.queryIndex(ctx, invitesTokenIndex, "token", token)
	if err != nil || len(invites) == 0 {
		return entities.Invite{}, err
	}
	return invites[0], nil
}

func (r *InviteDynamoRepository) FindActiveByEmail(ctx context.Context, email string, now time.Time) (entities.Invite, error) {
	invites, err := r.queryIndex(ctx, invitesEmailIndex, "email", email)
	if err != nil {
		return entities.Invite{}, err
	}
	for _, inv := range invites {
		if inv.Active(now) {
			return inv, nil
		}
	}
	return entities.Invite{}, nil
}

// Redeem flips used and writes the user binding in one transaction. A
// used invite cancels the whole transaction.
func (r *InviteDynamoRepository) Redeem(ctx context.Context, inviteID string, user entities.User) (entities.User, error) {
	up := newUserUpsert(user)
	_, err := r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				Update: &types.Update{
					TableName: aws.String(r.tableName),
					Key: map[string]types.AttributeValue{
						"id": &types.AttributeValueMemberS{Value: inviteID},
					},
					ConditionExpression: aws.String("attribute_exists(#id) AND #used = :false"),
					UpdateExpression:    aws.String("SET #used = :true"),
					ExpressionAttributeNames: map[string]string{
						"#id":   "id",
						"#used": "used",
					},
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":false": &types.AttributeValueMemberBOOL{Value: false},
						":true":  &types.AttributeValueMemberBOOL{Value: true},
					},
				},
			},
			{
				Update: &types.Update{
					TableName:                 aws.String(r.usersTable),
					Key:                       up.key,
					UpdateExpression:          aws.String(up.expr),
					ExpressionAttributeNames:  up.names,
					ExpressionAttributeValues: up.values,
				},
			},
		},
	})
	if err != nil {
		if isConditionFailed(err) {
			return entities.User{}, interfaces.ErrConditionFailed
		}
		return entities.User{}, err
	}

	bound, err := getUser(ctx, r.ddb, r.usersTable, user.ID)
	if err != nil || bound.ID == "" {
		// The transaction committed; report what was written.
		return user, nil
	}
	return bound, nil
}

func (r *InviteDynamoRepository) queryIndex(ctx context.Context, index, attr, value string) ([]entities.Invite, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:                aws.String(r.tableName),
		IndexName:                aws.String(index),
		KeyConditionExpression:   aws.String("#k = :v"),
		ExpressionAttributeNames: map[string]string{"#k": attr},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":v": &types.AttributeValueMemberS{Value: value},
		},
	})
	if err != nil {
		return nil, err
	}
	invites := make([]entities.Invite, 0, len(out.Items))
	for _, raw := range out.Items {
		var it inviteItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return nil, err
		}
		invites = append(invites, fromInviteItem(it))
	}
	return invites, nil
}

func toInviteItem(i entities.Invite) inviteItem {
	return inviteItem{
		ID:        i.ID,
		Email:     i.Email,
		Role:      string(i.Role),
		Token:     i.Token,
		ExpiresAt: formatTime(i.ExpiresAt),
		Used:      i.Used,
		CreatedBy: i.CreatedBy,
		CreatedAt: formatTime(i.CreatedAt),
	}
}

func fromInviteItem(it inviteItem) entities.Invite {
	return entities.Invite{
		ID:        it.ID,
		Email:     it.Email,
		Role:      entities.Role(it.Role),
		Token:     it.Token,
		ExpiresAt: parseTime(it.ExpiresAt),
		Used:      it.Used,
		CreatedBy: it.CreatedBy,
		CreatedAt: parseTime(it.CreatedAt),
	}
}
