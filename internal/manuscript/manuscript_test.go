package manuscript

import (
	"bytes"
	"math/rand/v2"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const catalogCSV = "\ufeffmanuscript_id,title,total_images,total_folios,start_folio,copyright,bw,shelfmark\n" +
	"ms1,Psalter,4,2,12a,British Library,no,Add MS 1\n" +
	"\n" +
	"ms2,Gospels,3,,7b,,yes,\n"

const linesCSV = `image_id,line,start_x,start_y,end_x,end_y,transcription,translation
1,2,10,40,300,60,second,
1,1,10,10,300,30,first,the first
2,1,5,5,50,25,other page,
1,2,12,70,280,90,second again,
`

func TestReadCatalog(t *testing.T) {
	got, err := ReadCatalog(strings.NewReader(catalogCSV))
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "ms1", got[0].ID)
	assert.Equal(t, "Psalter", got[0].Title)
	assert.Equal(t, 4, got[0].TotalImages)
	assert.Equal(t, 2, got[0].TotalFolios)
	assert.Equal(t, "12a", got[0].StartFolio)
	assert.False(t, got[0].BW)
	assert.Equal(t, map[string]string{"shelfmark": "Add MS 1"}, got[0].Extra)

	assert.Equal(t, 0, got[1].TotalFolios)
	assert.True(t, got[1].BW)
}

func TestReadCatalogRowError(t *testing.T) {
	in := "manuscript_id,total_images,start_folio\nms1,many,1a\n"
	_, err := ReadCatalog(strings.NewReader(in))
	require.Error(t, err)

	var rerr *RowError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, 2, rerr.Row)
	assert.Equal(t, "total_images", rerr.Column)
}

func TestReadCatalogMissingColumns(t *testing.T) {
	_, err := ReadCatalog(strings.NewReader("manuscript_id,title\nms1,x\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "total_images")
	assert.Contains(t, err.Error(), "start_folio")
}

func TestReadLines(t *testing.T) {
	got, err := ReadLines(strings.NewReader(linesCSV))
	require.NoError(t, err)
	require.Len(t, got, 4)
	assert.Equal(t, LineRecord{
		ImageID: "1", Line: 1, StartX: 10, StartY: 10, EndX: 300, EndY: 30,
		Transcription: "first", Translation: "the first",
	}, got[1])
}

func TestReadLinesBadCoordinate(t *testing.T) {
	in := "image_id,line,start_x,start_y,end_x,end_y,transcription\n1,1,10,ten,20,30,x\n"
	_, err := ReadLines(strings.NewReader(in))

	var rerr *RowError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, "start_y", rerr.Column)
}

func TestWriteLinesReadsBack(t *testing.T) {
	lines, err := ReadLines(strings.NewReader(linesCSV))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteLines(&buf, lines))

	again, err := ReadLines(&buf)
	require.NoError(t, err)
	assert.Equal(t, lines, again)
}

func TestLinesForPage(t *testing.T) {
	all, err := ReadLines(strings.NewReader(linesCSV))
	require.NoError(t, err)

	page := LinesForPage(all, 1)
	require.Len(t, page, 3)
	assert.Equal(t, "first", page[0].Transcription)
	// equal line numbers keep input order
	assert.Equal(t, "second", page[1].Transcription)
	assert.Equal(t, "second again", page[2].Transcription)

	assert.Same(t, &all[1], page[0])
	assert.True(t, Contains(page, &all[0]))
	assert.False(t, Contains(page, &all[2]))

	assert.Empty(t, LinesForPage(all, 9))
}

func TestLinesForPageIsStable(t *testing.T) {
	all, err := ReadLines(strings.NewReader(linesCSV))
	require.NoError(t, err)
	assert.Equal(t, LinesForPage(all, 1), LinesForPage(all, 1))
}

func TestLinesForPageAnyInputOrder(t *testing.T) {
	base := []LineRecord{
		{ImageID: "1", Line: 3, Transcription: "c"},
		{ImageID: "2", Line: 1, Transcription: "other page"},
		{ImageID: "1", Line: 1, Transcription: "a"},
		{ImageID: "10", Line: 2, Transcription: "page ten"},
		{ImageID: "1", Line: 4, Transcription: "d"},
		{ImageID: "1", Line: 2, Transcription: "b"},
		{ImageID: "01", Line: 5, Transcription: "padded id"},
	}
	rng := rand.New(rand.NewPCG(7, 11))
	for i := 0; i < 50; i++ {
		all := slices.Clone(base)
		rng.Shuffle(len(all), func(i, j int) { all[i], all[j] = all[j], all[i] })

		page := LinesForPage(all, 1)
		got := make([]string, len(page))
		for k, l := range page {
			got[k] = l.Transcription
			assert.Equal(t, "1", l.ImageID)
		}
		require.Equal(t, []string{"a", "b", "c", "d"}, got, "input order %v", all)
	}
}

func TestValidate(t *testing.T) {
	m := Metadata{ID: "", TotalImages: 0, StartFolio: "12c"}
	err := m.Validate()
	require.Error(t, err)

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	fields := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields = append(fields, fe.Field)
	}
	assert.ElementsMatch(t, []string{"manuscript_id", "total_images", "start_folio"}, fields)

	ok := Metadata{ID: "ms1", TotalImages: 1, StartFolio: "1a"}
	assert.NoError(t, ok.Validate())
}

func writeDataDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, CatalogFile), []byte(catalogCSV), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "ms1"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ms1", LinesFile), []byte(linesCSV), 0o644))
	return dir
}

func TestLoad(t *testing.T) {
	dir := writeDataDir(t)

	m, err := Load(dir, "ms1")
	require.NoError(t, err)
	assert.Equal(t, "Psalter", m.Metadata.Title)
	assert.Len(t, m.Lines, 4)

	_, err = Load(dir, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	// catalogued but without a lines file
	_, err = Load(dir, "ms2")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestAssetsPaths(t *testing.T) {
	a := Assets{Root: "/data/img"}
	assert.Equal(t, filepath.Join("/data/img", "ms1", "3.jpg"), a.ImagePath("ms1", 3))
	assert.Equal(t, filepath.Join("/data/img", "ms1", "thumbnails", "3.jpg"), a.ThumbnailPath("ms1", 3))
}
