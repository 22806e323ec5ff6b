package main

/*
	glacier elevation change, Longyearbyen, Svalbard

	loads a reference (2009) and an earlier (1990) DEM, brings the
	earlier survey onto the reference grid, differences them, and
	summarizes the thinning over the 1990 glacier outlines against
	stable terrain
*/

import (
	"fmt"
	"log"
	"sync"

	"github.com/maseology/mmio"

	"github.com/openterrain/geoutil/grid"
	"github.com/openterrain/geoutil/terrain"
	"github.com/openterrain/geoutil/vect"
	"github.com/openterrain/geoutil/zonal"
)

const (
	indir  = "data/"
	reffp  = indir + "longyearbyen_2009_ref.asc.gz"
	tbafp  = indir + "longyearbyen_1990_tba.asc.gz"
	shpfp  = indir + "glacier_outlines_1990.shp"
	outdir = "out/"
	utm33n = "+proj=utm +zone=33 +datum=WGS84 +units=m +no_defs" // DEM grids
	wgs84  = "+proj=longlat +datum=WGS84 +no_defs"               // outline inventory
)

func main() {
	tt := mmio.NewTimer()
	ref, tba, gv := load()
	tt.Lap("load complete")

	// bring the 1990 survey onto the 2009 grid
	tba, err := tba.Warp(grid.WarpSpec{To: ref.GD})
	if err != nil {
		log.Fatalln(err)
	}

	// elevation change
	ddem, err := ref.Diff(tba)
	if err != nil {
		log.Fatalln(err)
	}
	mn, mx := ddem.MinMax()
	fmt.Printf(" dDEM 2009-1990 range: %.1f to %.1f m\n", mn, mx)

	// shaded relief of the reference surface
	hs, err := terrain.Hillshade(ref, 315., 45.)
	if err != nil {
		log.Fatalln(err)
	}
	tt.Lap("terrain complete")

	// glacier mask on the common grid, cached once rasterized
	var gm *grid.Mask
	gobfp := outdir + "glaciermask.gob"
	if _, ok := mmio.FileExists(gobfp); ok {
		if gm, err = grid.LoadGobMask(gobfp); err != nil {
			log.Fatalln(err)
		}
	} else {
		gp, err := gv.Reproject(utm33n)
		if err != nil {
			log.Fatalln(err)
		}
		if gm, err = gp.Rasterize(ref.GD); err != nil {
			log.Fatalln(err)
		}
		if err := gm.SaveGob(gobfp); err != nil {
			log.Fatalln(err)
		}
	}
	fmt.Printf(" %d of %d cells glacierized\n", gm.Count(), ref.GD.Ncells())
	tt.Lap("rasterize complete")

	// mean dh over glaciers and over stable terrain
	sg, err := zonal.Stats(ddem, gm)
	if err != nil {
		log.Fatalln(err)
	}
	ss, err := zonal.Stats(ddem, gm.Not())
	if err != nil {
		log.Fatalln(err)
	}
	fmt.Printf(" mean dh glaciers: %.2f m (n=%s)\n", sg.Mean, mmio.Thousands(int64(sg.N)))
	fmt.Printf(" mean dh stable terrain: %.2f m (n=%s)\n", ss.Mean, mmio.Thousands(int64(ss.N)))
	if lat, _, err := ref.GD.CellLatLon(ref.GD.NR/2, ref.GD.NC/2); err == nil {
		fmt.Printf(" site latitude: %.2f\n", lat)
	}

	if err := ddem.Save(outdir + "ddem.asc.gz"); err != nil {
		log.Fatalln(err)
	}
	if err := hs.Save(outdir + "hillshade.real"); err != nil {
		log.Fatalln(err)
	}
	tt.Lap("output written")
}

func load() (ref, tba *grid.Real, gv *vect.Vector) {
	mmio.MakeDir(outdir)
	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		r, err := grid.Load(reffp)
		if err != nil {
			log.Fatalln(err)
		}
		ref = r
	}()
	go func() {
		defer wg.Done()
		r, err := grid.Load(tbafp)
		if err != nil {
			log.Fatalln(err)
		}
		tba = r
	}()
	go func() {
		defer wg.Done()
		v, err := vect.ReadSHP(shpfp, "NAME")
		if err != nil {
			log.Fatalln(err)
		}
		if err := v.DeclareCRS(wgs84); err != nil {
			log.Fatalln(err)
		}
		gv = v
	}()
	wg.Wait()
	return
}
