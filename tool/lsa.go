package tool

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// LSASpace is a latent semantic analysis space. A document is projected as
// the sum of the vectors of its known words, each counted as many times as
// it occurs.
type LSASpace struct {
	terms map[string]int
	u     *mat.Dense
}

var _ SemanticSpace = (*LSASpace)(nil)

// LoadLSASpace reads the term vectors file at path.
func LoadLSASpace(path string) (*LSASpace, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("lsa space: %w", err)
	}
	defer f.Close()

	s, err := ReadLSASpace(f)
	if err != nil {
		return nil, fmt.Errorf("lsa space %s: %w", path, err)
	}
	return s, nil
}

// ReadLSASpace reads term vectors: one line per term, the term followed by
// its coordinates, as the rows of the term-topic matrix of a trained LSI
// model. Every line has the same number of coordinates. Terms are
// lowercased; blank lines are skipped.
func ReadLSASpace(r io.Reader) (*LSASpace, error) {
	var (
		terms = map[string]int{}
		data  []float64
		dims  int
		line  int
	)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}

		if dims == 0 {
			dims = len(fields) - 1
			if dims == 0 {
				return nil, fmt.Errorf("line %d: term without coordinates", line)
			}
		}
		if len(fields)-1 != dims {
			return nil, fmt.Errorf("line %d: %d coordinates, want %d", line, len(fields)-1, dims)
		}

		term := strings.ToLower(fields[0])
		if _, dup := terms[term]; dup {
			return nil, fmt.Errorf("line %d: duplicate term %q", line, term)
		}

		for _, f := range fields[1:] {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			data = append(data, v)
		}
		terms[term] = len(terms)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	if len(terms) == 0 {
		return nil, errors.New("no terms")
	}

	return &LSASpace{terms: terms, u: mat.NewDense(len(terms), dims, data)}, nil
}

func (s *LSASpace) Dims() int {
	_, c := s.u.Dims()
	return c
}

// Terms returns the number of terms of the space.
func (s *LSASpace) Terms() int {
	return len(s.terms)
}

func (s *LSASpace) Vector(doc []string) []float64 {
	v := make([]float64, s.Dims())
	for _, w := range doc {
		if i, ok := s.terms[strings.ToLower(w)]; ok {
			floats.Add(v, s.u.RawRowView(i))
		}
	}
	return v
}

// Similarity returns the cosine similarity of two documents in s, between
// -1 and 1. It is 0 when a document has no word of the space.
func Similarity(s SemanticSpace, doc1, doc2 []string) float64 {
	a, b := s.Vector(doc1), s.Vector(doc2)

	na, nb := floats.Norm(a, 2), floats.Norm(b, 2)
	if na == 0 || nb == 0 {
		return 0
	}
	return floats.Dot(a, b) / (na * nb)
}
