package calculator

import (
	"context"

	"github.com/charithe/scicalc/pkg/expr"
	"go.opencensus.io/stats"
	"go.opencensus.io/stats/view"
	"go.opencensus.io/tag"
	"go.uber.org/zap"
)

var (
	// KeyOutcome tags evaluations with "ok", "syntax" or "math".
	KeyOutcome, _ = tag.NewKey("outcome")
	// KeyMethod tags evaluations with the RPC that triggered them.
	KeyMethod, _ = tag.NewKey("method")

	// MeasureEvaluations counts evaluated expressions.
	MeasureEvaluations = stats.Int64("calculator/evaluations", "Number of expressions evaluated", stats.UnitDimensionless)
	// MeasureExpressionLength records the length of each evaluated expression.
	MeasureExpressionLength = stats.Int64("calculator/expression_length", "Length of evaluated expressions in characters", stats.UnitDimensionless)
)

var (
	// EvaluationCountView counts evaluations per method and outcome.
	EvaluationCountView = &view.View{
		Name:        "calculator/evaluations",
		Description: "Count of evaluations by outcome",
		Measure:     MeasureEvaluations,
		TagKeys:     []tag.Key{KeyMethod, KeyOutcome},
		Aggregation: view.Count(),
	}

	// ExpressionLengthView is the distribution of expression lengths per method.
	ExpressionLengthView = &view.View{
		Name:        "calculator/expression_length",
		Description: "Distribution of evaluated expression lengths",
		Measure:     MeasureExpressionLength,
		TagKeys:     []tag.Key{KeyMethod},
		Aggregation: view.Distribution(4, 8, 16, 22, 32, 64, 128, 256, 512, 1024),
	}
)

// DefaultViews are the views recorded by the calculator service.
var DefaultViews = []*view.View{EvaluationCountView, ExpressionLengthView}

func recordEvaluation(ctx context.Context, method string, length int, kind expr.Kind) {
	outcome := "ok"
	if kind != expr.None {
		outcome = kind.String()
	}

	ctx, err := tag.New(ctx, tag.Insert(KeyMethod, method), tag.Insert(KeyOutcome, outcome))
	if err != nil {
		zap.S().Warnw("Failed to tag evaluation metrics", "error", err)
		return
	}

	stats.Record(ctx, MeasureEvaluations.M(1), MeasureExpressionLength.M(int64(length)))
}
