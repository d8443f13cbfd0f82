package builtins

import "github.com/opal-lang/rill/value"

// addVectorMethods registers the five operations value.Vector already
// implements (value/vector.go), wired up as pipe-chain methods so
// embedding/vector-model pipelines have something to call besides
// constructing value.Vector directly from a host.
func addVectorMethods(out map[string]*value.Callable) {
	out["dot"] = hostFunc("dot", func(ctx any, args []value.Value) (value.Value, error) {
		a, b, err := twoVectors("dot", args)
		if err != nil {
			return nil, err
		}
		d, err := a.Dot(b, zeroSpan)
		if err != nil {
			return nil, err
		}
		return value.Num(d), nil
	})

	out["norm"] = hostFunc("norm", func(ctx any, args []value.Value) (value.Value, error) {
		v, err := requireVector("norm", arg(args, 0))
		if err != nil {
			return nil, err
		}
		return value.Num(v.L2Norm()), nil
	})

	out["cosine_similarity"] = hostFunc("cosine_similarity", func(ctx any, args []value.Value) (value.Value, error) {
		a, b, err := twoVectors("cosine_similarity", args)
		if err != nil {
			return nil, err
		}
		s, err := a.CosineSimilarity(b, zeroSpan)
		if err != nil {
			return nil, err
		}
		return value.Num(s), nil
	})

	out["euclidean_distance"] = hostFunc("euclidean_distance", func(ctx any, args []value.Value) (value.Value, error) {
		a, b, err := twoVectors("euclidean_distance", args)
		if err != nil {
			return nil, err
		}
		d, err := a.EuclideanDistance(b, zeroSpan)
		if err != nil {
			return nil, err
		}
		return value.Num(d), nil
	})

	out["normalize"] = hostFunc("normalize", func(ctx any, args []value.Value) (value.Value, error) {
		v, err := requireVector("normalize", arg(args, 0))
		if err != nil {
			return nil, err
		}
		return v.Normalize(zeroSpan)
	})
}

func twoVectors(name string, args []value.Value) (*value.Vector, *value.Vector, error) {
	if err := requireArgs(name, args, 2); err != nil {
		return nil, nil, err
	}
	a, err := requireVector(name, args[0])
	if err != nil {
		return nil, nil, err
	}
	b, err := requireVector(name, args[1])
	if err != nil {
		return nil, nil, err
	}
	return a, b, nil
}
