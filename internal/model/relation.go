package model

// RelationType distinguishes friend and block relations
type RelationType int

const (
	RelationFriend RelationType = 1
	RelationBlock  RelationType = 2
)

// Relation is a directed relation document from one user to another.
// A mutual friendship is two Relation documents in opposite directions;
// the two are independently owned and there is no referential link between them.
type Relation struct {
	RelationID  string       `json:"relationId" firestore:"-"`
	UserID      string       `json:"userId" firestore:"userId"`
	RecipientID string       `json:"recipientId" firestore:"recipientId"`
	Relation    RelationType `json:"relation" firestore:"relation"`
	CreatedAt   int64        `json:"createdAt" firestore:"createdAt"`
	UpdatedAt   int64        `json:"updatedAt" firestore:"updatedAt"`
}

// FriendID resolves the other side of the relation relative to userID.
// The relation queries already filter on userId, but data written by older
// clients can be asymmetric, so both orientations are handled.
func (r *Relation) FriendID(userID string) string {
	if r.UserID == userID {
		return r.RecipientID
	}
	return r.UserID
}
