package grid

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/maseology/mmio"
)

// Load imports a raster, dispatching on file extension:
// .asc / .asc.gz ESRI ASCII grids, .real flat binary grids
// (with a .gdef definition file alongside).
func Load(fp string) (*Real, error) {
	if _, ok := mmio.FileExists(fp); !ok {
		return nil, fmt.Errorf("grid.Load %s: %w", fp, ErrIO)
	}
	switch mmio.GetExtension(fp) {
	case ".asc":
		return loadASC(fp, false)
	case ".gz":
		return loadASC(fp, true)
	case ".real":
		gd, err := ReadGDEF(mmio.RemoveExtension(fp) + ".gdef")
		if err != nil {
			return nil, err
		}
		return ReadReal(fp, gd)
	default:
		return nil, fmt.Errorf("grid.Load %s: unknown raster type: %w", fp, ErrIO)
	}
}

// Save exports the raster, dispatching on extension as in Load.
func (r *Real) Save(fp string) error {
	switch mmio.GetExtension(fp) {
	case ".asc":
		return r.saveASC(fp, false)
	case ".gz":
		return r.saveASC(fp, true)
	case ".real":
		if err := r.GD.WriteGDEF(mmio.RemoveExtension(fp) + ".gdef"); err != nil {
			return err
		}
		return WriteReal(fp, r)
	default:
		return fmt.Errorf("grid.Save %s: unknown raster type: %w", fp, ErrIO)
	}
}

func loadASC(fp string, zipped bool) (*Real, error) {
	f, err := os.Open(fp)
	if err != nil {
		return nil, fmt.Errorf("grid.loadASC %s: %w", fp, ErrIO)
	}
	defer f.Close()

	var rdr io.Reader = f
	if zipped {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("grid.loadASC %s: %w", fp, ErrIO)
		}
		defer gz.Close()
		rdr = gz
	}

	scn := bufio.NewScanner(rdr)
	scn.Buffer(make([]byte, 1024*1024), 1024*1024)
	scn.Split(bufio.ScanWords)
	next := func() (string, error) {
		if !scn.Scan() {
			return "", fmt.Errorf("grid.loadASC %s: truncated file: %w", fp, ErrIO)
		}
		return scn.Text(), nil
	}

	// header: ncols nrows xll{corner|center} yll{corner|center} cellsize [NODATA_value]
	hdr := map[string]float64{}
	var firstSample string
	for {
		k, err := next()
		if err != nil {
			return nil, err
		}
		lk := strings.ToLower(k)
		if !isHeaderKey(lk) {
			firstSample = k
			break
		}
		v, err := next()
		if err != nil {
			return nil, err
		}
		fv, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("grid.loadASC %s: header %s=%s: %w", fp, k, v, ErrIO)
		}
		hdr[lk] = fv
	}

	nc, nr := int(hdr["ncols"]), int(hdr["nrows"])
	cs := hdr["cellsize"]
	if nc <= 0 || nr <= 0 || cs <= 0. {
		return nil, fmt.Errorf("grid.loadASC %s: bad header: %w", fp, ErrIO)
	}
	xll, yll := hdr["xllcorner"], hdr["yllcorner"]
	if x, ok := hdr["xllcenter"]; ok {
		xll = x - cs/2.
	}
	if y, ok := hdr["yllcenter"]; ok {
		yll = y - cs/2.
	}
	nodata, hasNull := hdr["nodata_value"]

	gd, err := NewDefinition(xll, yll+float64(nr)*cs, cs, nr, nc, readPRJ(fp))
	if err != nil {
		return nil, err
	}

	a := make([]float64, gd.Ncells())
	for i := range a {
		s := firstSample
		if i > 0 || s == "" {
			if s, err = next(); err != nil {
				return nil, err
			}
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("grid.loadASC %s: sample %d: %w", fp, i, ErrIO)
		}
		if hasNull && v == nodata {
			v = math.NaN()
		}
		a[i] = v
	}
	return &Real{GD: gd, A: a}, nil
}

func isHeaderKey(k string) bool {
	switch k {
	case "ncols", "nrows", "xllcorner", "yllcorner", "xllcenter", "yllcenter", "cellsize", "nodata_value":
		return true
	}
	return false
}

func (r *Real) saveASC(fp string, zipped bool) error {
	f, err := os.Create(fp)
	if err != nil {
		return fmt.Errorf("grid.saveASC %s: %w", fp, ErrIO)
	}
	defer f.Close()

	var w io.Writer = f
	if zipped {
		gz := gzip.NewWriter(f)
		defer gz.Close()
		w = gz
	}

	gd, b := r.GD, r.GD.Bounds()
	fmt.Fprintf(w, "ncols %d\nnrows %d\nxllcorner %f\nyllcorner %f\ncellsize %f\nNODATA_value %d\n",
		gd.NC, gd.NR, b.Xmin, b.Ymin, gd.Cs, int(NoData))
	bw := bufio.NewWriter(w)
	for i, v := range r.A {
		if r.IsNull(i) {
			v = NoData
		}
		sep := " "
		if (i+1)%gd.NC == 0 {
			sep = "\n"
		}
		fmt.Fprintf(bw, "%g%s", v, sep)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("grid.saveASC %s: %w", fp, ErrIO)
	}
	return writePRJ(fp, gd.Proj4)
}

// ascii grids carry no referencing; a .prj sidecar holding a proj4
// string is honoured when present.
func readPRJ(fp string) string {
	pfp := prjPath(fp)
	if _, ok := mmio.FileExists(pfp); !ok {
		return ""
	}
	lns, _ := mmio.ReadTextLines(pfp)
	for _, ln := range lns {
		if strings.HasPrefix(strings.TrimSpace(ln), "+") {
			return normProj4(ln)
		}
	}
	return ""
}

func writePRJ(fp, proj4 string) error {
	if proj4 == "" {
		return nil
	}
	if err := os.WriteFile(prjPath(fp), []byte(proj4+"\n"), 0644); err != nil {
		return fmt.Errorf("grid.writePRJ: %w", ErrIO)
	}
	return nil
}

func prjPath(fp string) string {
	base := mmio.RemoveExtension(fp)
	if mmio.GetExtension(fp) == ".gz" {
		base = mmio.RemoveExtension(base)
	}
	return base + ".prj"
}
