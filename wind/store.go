package wind

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// Store holds the loaded forecast fields, keyed by their valid hour, and
// re-scans the forecast directory for new files on demand. Forecast files
// are named <refdate>.f<hours>, refdate formatted 2006010215.
type Store struct {
	dir    string
	fields map[string]*Field
	lock   sync.RWMutex
}

var ErrNoField = errors.New("no wind field loaded")

func NewStore(dir string) *Store {
	s := &Store{
		dir:    dir,
		fields: make(map[string]*Field),
	}
	if err := s.Merge(); err != nil {
		log.WithError(err).Error("Error loading wind fields")
	}
	return s
}

func validTime(file string) (time.Time, error) {
	parts := strings.Split(file, ".")
	if len(parts) != 2 || len(parts[1]) < 2 {
		return time.Time{}, errors.New("not a forecast file name")
	}

	t, err := time.Parse("2006010215", parts[0])
	if err != nil {
		return time.Time{}, err
	}

	h, err := strconv.Atoi(parts[1][1:])
	if err != nil {
		return time.Time{}, err
	}

	return t.Add(time.Hour * time.Duration(h)), nil
}

// Merge scans the forecast directory, drops fields whose file disappeared
// and loads files not seen yet. Newer reference runs replace older ones for
// the same valid hour.
func (s *Store) Merge() error {
	s.lock.Lock()
	defer s.lock.Unlock()

	for stamp, f := range s.fields {
		if _, err := os.Stat(filepath.Join(s.dir, f.File)); os.IsNotExist(err) {
			log.Infof("Remove wind field %s", stamp)
			delete(s.fields, stamp)
		}
	}

	var files []string
	err := filepath.Walk(s.dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			log.WithError(err).Errorf("Error walking file '%s'", path)
		} else if info.Mode().IsRegular() && !strings.HasSuffix(info.Name(), ".tmp") {
			files = append(files, info.Name())
		}
		return nil
	})
	if err != nil {
		return err
	}

	sort.Strings(files)

	for _, file := range files {
		date, err := validTime(file)
		if err != nil {
			log.WithError(err).Debugf("Skipping '%s'", file)
			continue
		}

		stamp := date.Format("2006010215")
		if f, found := s.fields[stamp]; found && f.File >= file {
			continue
		}

		field, err := Load(s.dir, date, file)
		if err != nil {
			log.WithError(err).Errorf("Error loading grib file '%s'", file)
			continue
		}

		log.Debugf("Loaded wind field %s from %s", stamp, file)
		s.fields[stamp] = &field
	}

	return nil
}

// find returns the fields bracketing m and the blend factor between them.
func (s *Store) find(m time.Time) (*Field, *Field, float64) {
	keys := make([]string, 0, len(s.fields))
	for k := range s.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	if len(keys) == 0 {
		return nil, nil, 0
	}

	stamp := m.Format("2006010215")
	if keys[0] > stamp {
		return s.fields[keys[0]], nil, 0
	}

	for i := range keys {
		if keys[i] > stamp {
			before := s.fields[keys[i-1]]
			after := s.fields[keys[i]]
			h := m.Sub(before.Date).Minutes()
			delta := after.Date.Sub(before.Date).Minutes()
			return before, after, h / delta
		}
	}

	return s.fields[keys[len(keys)-1]], nil, 0
}

// UV interpolates the wind components at lat/lon degrees and time m,
// blending the two bracketing forecast fields.
func (s *Store) UV(lat, lon float64, m time.Time) (float64, float64, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	w1, w2, h := s.find(m)
	if w1 == nil {
		return 0, 0, ErrNoField
	}

	u, v := w1.UV(lat, lon)
	if w2 != nil {
		u2, v2 := w2.UV(lat, lon)
		u = u2*h + u*(1-h)
		v = v2*h + v*(1-h)
	}

	return u, v, nil
}

// At reports the direction the wind blows from (degrees) and its speed
// (m/s) at lat/lon degrees and time m.
func (s *Store) At(lat, lon float64, m time.Time) (float64, float64, error) {
	u, v, err := s.UV(lat, lon, m)
	if err != nil {
		return 0, 0, err
	}

	dir, speed := DirectionAndSpeed(u, v)
	return dir, speed, nil
}
