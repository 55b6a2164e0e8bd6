package model

import "github.com/kavram/adaptiq/internal/tracker"

// FeatureCount is the width of the classifier's input vector.
const FeatureCount = 4

// FeatureNames lists the features in vector order.
var FeatureNames = []string{
	"accuracy",
	"avg_response_time",
	"current_streak",
	"recent_accuracy",
}

// Features builds the classifier input vector from a performance snapshot.
// Live inference and training extraction share this single definition, so a
// model always scores the same quantities it was fitted on.
func Features(snap tracker.Snapshot) []float64 {
	return []float64{
		snap.Accuracy,
		snap.AvgResponseTime,
		float64(snap.CurrentStreak),
		snap.RecentAccuracy,
	}
}
