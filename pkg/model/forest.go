// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
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

package model

import (
	"fmt"
	"math"

	apperrors "github.com/mchmarny/crop-advisor/pkg/errors"
	"github.com/mchmarny/crop-advisor/pkg/feature"
)

// Classifier kinds.
const (
	KindRandomForest = "RandomForestClassifier"
	KindExtraTrees   = "ExtraTreesClassifier"
	KindDecisionTree = "DecisionTreeClassifier"
)

// leaf marks a node without children.
const leaf = -1

// TreeDoc is one fitted decision tree in scikit-learn array layout.
// Node 0 is the root; a node whose left child is -1 is a leaf.
type TreeDoc struct {
	ChildrenLeft  []int       `json:"children_left" yaml:"children_left"`
	ChildrenRight []int       `json:"children_right" yaml:"children_right"`
	Feature       []int       `json:"feature" yaml:"feature"`
	Threshold     []float64   `json:"threshold" yaml:"threshold"`
	Value         [][]float64 `json:"value" yaml:"value"`
}

// ForestDoc is the serialized form of a tree-ensemble classifier.
type ForestDoc struct {
	Kind      string    `json:"kind" yaml:"kind"`
	NFeatures int       `json:"n_features" yaml:"n_features"`
	NClasses  int       `json:"n_classes" yaml:"n_classes"`
	Trees     []TreeDoc `json:"trees" yaml:"trees"`
}

type tree struct {
	left      []int
	right     []int
	feature   []int
	threshold []float64
	// dist holds the normalized class distribution of leaves only.
	dist [][]float64
}

// Forest averages the class distributions of its trees.
type Forest struct {
	trees    []tree
	nClasses int
}

// NewForest validates doc and builds a Forest.
func NewForest(doc ForestDoc) (*Forest, error) {
	switch doc.Kind {
	case KindRandomForest, KindExtraTrees:
	case KindDecisionTree:
		if len(doc.Trees) != 1 {
			return nil, invalidArtifact("classifier", fmt.Sprintf("%s needs exactly one tree, got %d", doc.Kind, len(doc.Trees)))
		}
	default:
		return nil, invalidArtifact("classifier", fmt.Sprintf("unsupported kind %q", doc.Kind))
	}
	if doc.NFeatures != feature.Size {
		return nil, invalidArtifact("classifier", fmt.Sprintf("n_features is %d, want %d", doc.NFeatures, feature.Size))
	}
	if doc.NClasses < 1 {
		return nil, invalidArtifact("classifier", "n_classes must be positive")
	}
	if len(doc.Trees) == 0 {
		return nil, invalidArtifact("classifier", "no trees")
	}

	f := &Forest{
		trees:    make([]tree, len(doc.Trees)),
		nClasses: doc.NClasses,
	}
	for i, td := range doc.Trees {
		t, err := buildTree(td, doc.NClasses)
		if err != nil {
			return nil, invalidArtifact("classifier", fmt.Sprintf("tree %d: %v", i, err))
		}
		f.trees[i] = t
	}
	return f, nil
}

func buildTree(td TreeDoc, nClasses int) (tree, error) {
	n := len(td.ChildrenLeft)
	if n == 0 {
		return tree{}, fmt.Errorf("empty tree")
	}
	if len(td.ChildrenRight) != n || len(td.Feature) != n || len(td.Threshold) != n || len(td.Value) != n {
		return tree{}, fmt.Errorf("node arrays differ in length")
	}

	t := tree{
		left:      td.ChildrenLeft,
		right:     td.ChildrenRight,
		feature:   td.Feature,
		threshold: td.Threshold,
		dist:      make([][]float64, n),
	}

	for i := 0; i < n; i++ {
		l, r := td.ChildrenLeft[i], td.ChildrenRight[i]
		if l == leaf {
			if r != leaf {
				return tree{}, fmt.Errorf("node %d has only a right child", i)
			}
			row := td.Value[i]
			if len(row) != nClasses {
				return tree{}, fmt.Errorf("node %d value has %d classes, want %d", i, len(row), nClasses)
			}
			dist, err := normalize(row)
			if err != nil {
				return tree{}, fmt.Errorf("node %d: %w", i, err)
			}
			t.dist[i] = dist
			continue
		}
		// children always follow their parent, so traversal terminates
		if l <= i || l >= n || r <= i || r >= n {
			return tree{}, fmt.Errorf("node %d has children out of range", i)
		}
		if f := td.Feature[i]; f < 0 || f >= feature.Size {
			return tree{}, fmt.Errorf("node %d splits on feature %d", i, f)
		}
		if math.IsNaN(td.Threshold[i]) {
			return tree{}, fmt.Errorf("node %d threshold is NaN", i)
		}
	}
	return t, nil
}

// normalize turns class counts or weighted fractions into a distribution.
func normalize(row []float64) ([]float64, error) {
	var sum float64
	for _, x := range row {
		if x < 0 || math.IsNaN(x) || math.IsInf(x, 0) {
			return nil, fmt.Errorf("invalid class weight %v", x)
		}
		sum += x
	}
	out := make([]float64, len(row))
	if sum == 0 {
		return out, nil
	}
	for i, x := range row {
		out[i] = x / sum
	}
	return out, nil
}

func (t *tree) leafFor(v feature.Vector) int {
	node := 0
	for t.left[node] != leaf {
		if v[t.feature[node]] <= t.threshold[node] {
			node = t.left[node]
		} else {
			node = t.right[node]
		}
	}
	return node
}

// NumClasses returns the number of classes the forest was fitted on.
func (f *Forest) NumClasses() int {
	return f.nClasses
}

// PredictProba returns the mean leaf distribution across trees.
func (f *Forest) PredictProba(v feature.Vector) ([]float64, error) {
	for i, x := range v {
		if math.IsNaN(x) {
			return nil, apperrors.NewWithContext(apperrors.ErrCodeInference,
				"Input X contains NaN.", map[string]any{"feature": feature.Names[i]})
		}
	}

	proba := make([]float64, f.nClasses)
	for i := range f.trees {
		dist := f.trees[i].dist[f.trees[i].leafFor(v)]
		for c, p := range dist {
			proba[c] += p
		}
	}
	n := float64(len(f.trees))
	for c := range proba {
		proba[c] /= n
	}
	return proba, nil
}

// Predict returns the most probable class; the lowest index wins ties.
func (f *Forest) Predict(v feature.Vector) (int, error) {
	proba, err := f.PredictProba(v)
	if err != nil {
		return 0, err
	}
	best := 0
	for c := 1; c < len(proba); c++ {
		if proba[c] > proba[best] {
			best = c
		}
	}
	return best, nil
}
