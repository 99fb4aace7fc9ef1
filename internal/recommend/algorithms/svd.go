// Shoprec - E-commerce Product Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package algorithms

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/tomtom215/shoprec/internal/recommend"
)

// Factorization is a rank-k truncated singular value decomposition of a
// rating matrix: R ~ U * diag(Sigma) * Vt. It is immutable and safe for
// concurrent use once returned by Factorize.
type Factorization struct {
	// U is rows x k.
	U *mat.Dense

	// Sigma holds the k largest singular values in descending order.
	Sigma []float64

	// Vt is k x cols.
	Vt *mat.Dense

	// K is the rank of the factorization.
	K int

	rows, cols int

	// residual is ||R||_F^2 - sum(Sigma^2), the squared distance to the
	// signed reconstruction.
	residual float64
}

// ValidRank reports whether k is a usable rank for a rows x cols matrix.
// The truncated decomposition needs 1 <= k < min(rows, cols) - 1.
func ValidRank(rows, cols, k int) bool {
	return k >= 1 && k < min(rows, cols)-1
}

// sparseEntry is one nonzero of a sparse row or column.
type sparseEntry struct {
	idx int
	val float64
}

// Factorize computes the rank-k truncated SVD of m. It fails with
// ErrDecomposition when k is not a valid rank for the matrix dimensions or
// when the eigendecomposition does not converge.
//
// The top-k singular triplets come from the Gram matrix of the smaller
// side (R*Rt when rows <= cols, Rt*R otherwise), accumulated from the
// nonzeros only. The other factor is recovered by projecting R onto the
// singular vectors, so memory stays at min(rows, cols)^2 plus the factors.
func Factorize(m *recommend.RatingMatrix, k int) (*Factorization, error) {
	const op = "factorize"

	rows, cols := m.Rows(), m.Cols()
	if !ValidRank(rows, cols, k) {
		return nil, recommend.NewError(op, recommend.ErrDecomposition,
			"rank %d invalid for %dx%d matrix, need 1 <= k < %d", k, rows, cols, min(rows, cols)-1)
	}

	byRow := rowEntries(m)
	wide := rows <= cols

	var gram *mat.SymDense
	if wide {
		gram = gramMatrix(columnEntries(m, byRow), rows)
	} else {
		gram = gramMatrix(byRow, cols)
	}

	var eig mat.EigenSym
	if ok := eig.Factorize(gram, true); !ok {
		return nil, recommend.NewError(op, recommend.ErrDecomposition, "eigendecomposition did not converge")
	}
	values := eig.Values(nil)
	var vectors mat.Dense
	eig.VectorsTo(&vectors)

	// Eigenvalues are ascending; take the last k in reverse.
	n := len(values)
	sigma := make([]float64, k)
	basis := make([]float64, n*k)
	for i := 0; i < k; i++ {
		col := n - 1 - i
		sigma[i] = math.Sqrt(math.Max(values[col], 0))
		for r := 0; r < n; r++ {
			basis[r*k+i] = vectors.At(r, col)
		}
	}

	// Components with a negligible singular value contribute nothing and
	// get a zero projected vector.
	inv := make([]float64, k)
	tol := sigma[0] * 1e-12
	for i, s := range sigma {
		if s > tol {
			inv[i] = 1 / s
		}
	}

	u := make([]float64, rows*k)
	vt := make([]float64, k*cols)

	if wide {
		copy(u, basis)
		// Vt[i][c] = (1/sigma_i) * sum_r U[r][i] * R[r][c]
		for r, entries := range byRow {
			ur := u[r*k : (r+1)*k]
			for _, e := range entries {
				for i, ui := range ur {
					vt[i*cols+e.idx] += ui * e.val
				}
			}
		}
		for i := 0; i < k; i++ {
			row := vt[i*cols : (i+1)*cols]
			for c := range row {
				row[c] *= inv[i]
			}
		}
	} else {
		for c := 0; c < cols; c++ {
			for i := 0; i < k; i++ {
				vt[i*cols+c] = basis[c*k+i]
			}
		}
		// U[r][i] = (1/sigma_i) * sum_c R[r][c] * V[c][i]
		for r, entries := range byRow {
			ur := u[r*k : (r+1)*k]
			for _, e := range entries {
				vc := basis[e.idx*k : (e.idx+1)*k]
				for i := range ur {
					ur[i] += e.val * vc[i]
				}
			}
			for i := range ur {
				ur[i] *= inv[i]
			}
		}
	}

	var total, kept float64
	for _, entries := range byRow {
		for _, e := range entries {
			total += e.val * e.val
		}
	}
	for _, s := range sigma {
		kept += s * s
	}

	return &Factorization{
		U:        mat.NewDense(rows, k, u),
		Sigma:    sigma,
		Vt:       mat.NewDense(k, cols, vt),
		K:        k,
		rows:     rows,
		cols:     cols,
		residual: math.Max(total-kept, 0),
	}, nil
}

// rowEntries lists each row's nonzeros in ascending column order.
func rowEntries(m *recommend.RatingMatrix) [][]sparseEntry {
	out := make([][]sparseEntry, m.Rows())
	for r := range out {
		entries := make([]sparseEntry, 0, len(m.Rated(r)))
		for c, v := range m.Row(r) {
			if v != 0 {
				entries = append(entries, sparseEntry{idx: c, val: v})
			}
		}
		out[r] = entries
	}
	return out
}

// columnEntries transposes row lists into per-column lists in ascending
// row order.
func columnEntries(m *recommend.RatingMatrix, byRow [][]sparseEntry) [][]sparseEntry {
	out := make([][]sparseEntry, m.Cols())
	for r, entries := range byRow {
		for _, e := range entries {
			out[e.idx] = append(out[e.idx], sparseEntry{idx: r, val: e.val})
		}
	}
	return out
}

// gramMatrix returns the n x n matrix sum over lists of x*xt, where each
// list is a sparse vector sorted by ascending index. Only the upper
// triangle is written.
func gramMatrix(lists [][]sparseEntry, n int) *mat.SymDense {
	g := mat.NewSymDense(n, nil)
	raw := g.RawSymmetric()
	for _, list := range lists {
		for a, ea := range list {
			row := raw.Data[ea.idx*raw.Stride:]
			for _, eb := range list[a:] {
				row[eb.idx] += ea.val * eb.val
			}
		}
	}
	return g
}

// Rows returns the number of matrix rows the factorization was built from.
func (f *Factorization) Rows() int { return f.rows }

// Cols returns the number of matrix columns the factorization was built from.
func (f *Factorization) Cols() int { return f.cols }

// Score returns the absolute reconstructed value at (row, col).
func (f *Factorization) Score(row, col int) float64 {
	u := f.U.RawRowView(row)
	vt := f.Vt.RawMatrix()
	var s float64
	for i, ui := range u {
		s += ui * f.Sigma[i] * vt.Data[i*vt.Stride+col]
	}
	return math.Abs(s)
}

// Reconstruct returns |U * diag(Sigma) * Vt| as a dense rows x cols matrix.
// Negative reconstructed values are folded to their magnitude. It allocates
// the full matrix; ranking uses Score instead.
func (f *Factorization) Reconstruct() *mat.Dense {
	out := mat.NewDense(f.rows, f.cols, nil)
	for r := 0; r < f.rows; r++ {
		for c := 0; c < f.cols; c++ {
			out.Set(r, c, f.Score(r, c))
		}
	}
	return out
}

// ReconstructionError returns the squared Frobenius distance between m and
// the signed rank-k reconstruction, which equals the energy of the dropped
// singular values. For a fixed matrix it does not increase as k grows.
func ReconstructionError(f *Factorization, m *recommend.RatingMatrix) float64 {
	if f.rows != m.Rows() || f.cols != m.Cols() {
		return math.NaN()
	}
	return f.residual
}

// RecommendLatent ranks the products targetRow has not rated by their
// reconstructed score, highest first with ties broken by ascending id, and
// returns at most n of them.
func RecommendLatent(f *Factorization, m *recommend.RatingMatrix, products *recommend.Index, targetRow, n int) ([]recommend.Scored, error) {
	const op = "latent recommend"

	if err := checkRow(op, m, targetRow); err != nil {
		return nil, err
	}
	if f.rows != m.Rows() || f.cols != m.Cols() {
		return nil, recommend.NewError(op, recommend.ErrDecomposition,
			"factorization is %dx%d, matrix is %dx%d", f.rows, f.cols, m.Rows(), m.Cols())
	}
	if n <= 0 {
		return []recommend.Scored{}, nil
	}

	row := m.Row(targetRow)
	candidates := make([]recommend.Scored, 0, len(row)-len(m.Rated(targetRow)))
	for c, v := range row {
		if v != 0 {
			continue
		}
		candidates = append(candidates, recommend.Scored{
			ProductID: products.ID(c),
			Score:     f.Score(targetRow, c),
		})
	}

	sortScored(candidates)

	if len(candidates) > n {
		candidates = candidates[:n]
	}
	return candidates, nil
}
