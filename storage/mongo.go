// Copyright 2025 ccxguard contributors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package storage

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ccxlabs/ccxguard"
)

// DefaultCollection is the collection name Mongo uses when none is given to
// NewMongo, matching the name the vakt Python library's Mongo backend uses.
const DefaultCollection = "vakt_policies"

// mongoDoc is the canonical-JSON shape (spec.md §6) a Policy is stored as,
// plus the Mongo-required "_id" field aliasing UID.
type mongoDoc struct {
	ID          string                   `bson:"_id"`
	Description string                   `bson:"description"`
	Effect      string                   `bson:"effect"`
	Subjects    []interface{}            `bson:"subjects"`
	Actions     []interface{}            `bson:"actions"`
	Resources   []interface{}            `bson:"resources"`
	Context     map[string]interface{}   `bson:"context"`
}

// Mongo is a Storage backend over a MongoDB collection. It keeps policies
// as their canonical-JSON document shape so the collection can be
// inspected or edited with any Mongo tool without a ccxguard-specific
// decoder. FindForInquiry does a full collection scan regardless of
// Checker.Hint: narrowing to an index requires a schema decision (which
// fields to index) left to the deployment, not this package.
type Mongo struct {
	coll *mongo.Collection
	ctx  func() context.Context
}

// NewMongo builds a Mongo backend over collection (DefaultCollection if
// empty) in db.
func NewMongo(db *mongo.Database, collection string) *Mongo {
	if collection == "" {
		collection = DefaultCollection
	}
	return &Mongo{coll: db.Collection(collection), ctx: context.Background}
}

func (s *Mongo) Add(p *ccxguard.Policy) error {
	if err := p.Validate(); err != nil {
		return err
	}
	doc, err := toMongoDoc(p)
	if err != nil {
		return err
	}
	_, err = s.coll.InsertOne(s.ctx(), doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ccxguard.ErrDuplicate(p.UID)
		}
		return ccxguard.ErrSerialization("inserting policy %q: %v", p.UID, err)
	}
	return nil
}

func (s *Mongo) Get(uid string) (*ccxguard.Policy, bool, error) {
	var doc mongoDoc
	err := s.coll.FindOne(s.ctx(), bson.M{"_id": uid}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, ccxguard.ErrSerialization("loading policy %q: %v", uid, err)
	}
	p, err := fromMongoDoc(doc)
	if err != nil {
		return nil, false, err
	}
	return p, true, nil
}

func (s *Mongo) GetAll(limit, offset int) ([]*ccxguard.Policy, error) {
	if err := ccxguard.CheckPagination(limit, offset); err != nil {
		return nil, err
	}
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}).SetSkip(int64(offset))
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	cur, err := s.coll.Find(s.ctx(), bson.M{}, opts)
	if err != nil {
		return nil, ccxguard.ErrSerialization("listing policies: %v", err)
	}
	defer cur.Close(s.ctx())

	var docs []mongoDoc
	if err := cur.All(s.ctx(), &docs); err != nil {
		return nil, ccxguard.ErrSerialization("listing policies: %v", err)
	}
	return docsToPolicies(docs)
}

func (s *Mongo) Update(p *ccxguard.Policy) error {
	if err := p.Validate(); err != nil {
		return err
	}
	doc, err := toMongoDoc(p)
	if err != nil {
		return err
	}
	res, err := s.coll.ReplaceOne(s.ctx(), bson.M{"_id": p.UID}, doc)
	if err != nil {
		return ccxguard.ErrSerialization("updating policy %q: %v", p.UID, err)
	}
	if res.MatchedCount == 0 {
		return ccxguard.ErrNotFound(p.UID)
	}
	return nil
}

func (s *Mongo) Delete(uid string) error {
	res, err := s.coll.DeleteOne(s.ctx(), bson.M{"_id": uid})
	if err != nil {
		return ccxguard.ErrSerialization("deleting policy %q: %v", uid, err)
	}
	if res.DeletedCount == 0 {
		return ccxguard.ErrNotFound(uid)
	}
	return nil
}

// FindForInquiry scans the whole collection. The Exact/Fuzzy/Regex hints
// from c.Hint() could in principle drive an indexed query against the
// subjects/actions/resources arrays, but the match semantics (OR-across-
// elements, nested Object attributes, Rule evaluation) don't reduce to a
// Mongo query without reimplementing the Checker in the aggregation
// pipeline — so this backend always loads every policy and lets c decide.
func (s *Mongo) FindForInquiry(_ *ccxguard.Inquiry, _ ccxguard.Checker) ([]*ccxguard.Policy, error) {
	cur, err := s.coll.Find(s.ctx(), bson.M{})
	if err != nil {
		return nil, ccxguard.ErrSerialization("scanning policies: %v", err)
	}
	defer cur.Close(s.ctx())

	var docs []mongoDoc
	if err := cur.All(s.ctx(), &docs); err != nil {
		return nil, ccxguard.ErrSerialization("scanning policies: %v", err)
	}
	return docsToPolicies(docs)
}

func toMongoDoc(p *ccxguard.Policy) (mongoDoc, error) {
	data, err := ccxguard.PolicyToJSON(p)
	if err != nil {
		return mongoDoc{}, ccxguard.ErrSerialization("encoding policy %q: %v", p.UID, err)
	}
	var raw map[string]interface{}
	if err := bson.UnmarshalExtJSON(data, false, &raw); err != nil {
		return mongoDoc{}, ccxguard.ErrSerialization("encoding policy %q: %v", p.UID, err)
	}
	subjects, _ := raw["subjects"].([]interface{})
	actions, _ := raw["actions"].([]interface{})
	resources, _ := raw["resources"].([]interface{})
	ctx, _ := raw["context"].(map[string]interface{})
	return mongoDoc{
		ID:          p.UID,
		Description: p.Description,
		Effect:      string(p.Effect),
		Subjects:    subjects,
		Actions:     actions,
		Resources:   resources,
		Context:     ctx,
	}, nil
}

func fromMongoDoc(doc mongoDoc) (*ccxguard.Policy, error) {
	data, err := bson.MarshalExtJSON(bson.M{
		"uid":         doc.ID,
		"description": doc.Description,
		"effect":      doc.Effect,
		"subjects":    doc.Subjects,
		"actions":     doc.Actions,
		"resources":   doc.Resources,
		"context":     doc.Context,
	}, false, false)
	if err != nil {
		return nil, ccxguard.ErrSerialization("decoding policy %q: %v", doc.ID, err)
	}
	return ccxguard.PolicyFromJSON(data)
}

func docsToPolicies(docs []mongoDoc) ([]*ccxguard.Policy, error) {
	out := make([]*ccxguard.Policy, len(docs))
	for i, doc := range docs {
		p, err := fromMongoDoc(doc)
		if err != nil {
			return nil, err
		}
		out[i] = p
	}
	return out, nil
}
