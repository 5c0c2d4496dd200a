package service

import (
	"context"
	"errors"
	"log/slog"
	"sort"

	"github.com/gymdesk/gym-api/internal/domain"
	"github.com/gymdesk/gym-api/internal/platform/logger"
	"github.com/gymdesk/gym-api/internal/store"
	"golang.org/x/sync/errgroup"
)

// Report lists the dangling references found by a reconciliation scan.
type Report struct {
	// OrphanRoutines are routines whose nombreAlumno/dniAlumno pair no
	// longer resolves to a student.
	OrphanRoutines []string `json:"orphanRoutines"`

	// StaleEnrollments maps class id to enrolled ids that no longer resolve
	// to a student.
	StaleEnrollments map[string][]string `json:"staleEnrollments"`

	// OrphanClasses are classes whose teacher pair no longer resolves.
	OrphanClasses []string `json:"orphanClasses"`
}

// Empty reports whether the scan found nothing to repair.
func (r *Report) Empty() bool {
	return len(r.OrphanRoutines) == 0 && len(r.StaleEnrollments) == 0 && len(r.OrphanClasses) == 0
}

// RepairResult counts what Repair changed.
type RepairResult struct {
	RoutinesDeleted   int `json:"routinesDeleted"`
	EnrollmentsPulled int `json:"enrollmentsPulled"`
	ClassesDeleted    int `json:"classesDeleted"`
}

// Reconciler finds and removes references left behind by interrupted
// cascades or by writes that bypassed the services.
type Reconciler struct {
	stores store.Stores
	logger *slog.Logger
}

// NewReconciler creates a Reconciler over stores.
func NewReconciler(stores store.Stores, logger *slog.Logger) *Reconciler {
	return &Reconciler{stores: stores, logger: componentLogger(logger, "reconciler")}
}

type studentKey struct{ nombre, dni string }

type teacherKey struct{ nombre, email string }

// Scan loads every collection and reports dangling references. It changes
// nothing.
func (r *Reconciler) Scan(ctx context.Context) (*Report, error) {
	var (
		students []*domain.Student
		teachers []*domain.Teacher
		classes  []*domain.Class
		routines []*domain.Routine
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { students, err = r.stores.Students.List(gctx); return })
	g.Go(func() (err error) { teachers, err = r.stores.Teachers.List(gctx); return })
	g.Go(func() (err error) { classes, err = r.stores.Classes.List(gctx); return })
	g.Go(func() (err error) { routines, err = r.stores.Routines.List(gctx); return })
	if err := g.Wait(); err != nil {
		return nil, NewServiceError("reconcile", "scan", err)
	}

	studentIDs := make(map[string]struct{}, len(students))
	studentPairs := make(map[studentKey]struct{}, len(students))
	for _, s := range students {
		studentIDs[s.ID] = struct{}{}
		studentPairs[studentKey{s.Nombre, s.DNI}] = struct{}{}
	}
	teacherPairs := make(map[teacherKey]struct{}, len(teachers))
	for _, t := range teachers {
		teacherPairs[teacherKey{t.Nombre, t.Email}] = struct{}{}
	}

	report := &Report{StaleEnrollments: map[string][]string{}}
	for _, rt := range routines {
		if _, ok := studentPairs[studentKey{rt.NombreAlumno, rt.DNIAlumno}]; !ok {
			report.OrphanRoutines = append(report.OrphanRoutines, rt.ID)
		}
	}
	for _, c := range classes {
		if _, ok := teacherPairs[teacherKey{c.NombreProfesor, c.EmailProfesor}]; !ok {
			report.OrphanClasses = append(report.OrphanClasses, c.ID)
			continue
		}
		for _, id := range c.AlumnosInscriptos {
			if _, ok := studentIDs[id]; !ok {
				report.StaleEnrollments[c.ID] = append(report.StaleEnrollments[c.ID], id)
			}
		}
	}
	sort.Strings(report.OrphanRoutines)
	sort.Strings(report.OrphanClasses)

	return report, nil
}

// Repair removes what report lists. Every entry is re-checked against the
// stores right before it is changed, so entries that vanished or were
// resolved by writes made after the scan are skipped.
func (r *Reconciler) Repair(ctx context.Context, report *Report) (*RepairResult, error) {
	log := logger.FromContextOrDefault(ctx, r.logger)
	res := &RepairResult{}

	for _, id := range report.OrphanRoutines {
		orphan, err := r.routineOrphaned(ctx, id)
		if err != nil {
			return res, NewServiceError("reconcile", "repair", err)
		}
		if !orphan {
			continue
		}
		err = r.stores.Routines.Delete(ctx, id)
		if store.IsNotFoundError(err) {
			continue
		}
		if err != nil {
			return res, NewServiceError("reconcile", "repair", err)
		}
		res.RoutinesDeleted++
	}

	for classID, ids := range report.StaleEnrollments {
		for _, id := range ids {
			_, err := r.stores.Students.GetByID(ctx, id)
			if err == nil {
				continue
			}
			if !store.IsNotFoundError(err) {
				return res, NewServiceError("reconcile", "repair", err)
			}
			err = r.stores.Classes.RemoveStudent(ctx, classID, id)
			if store.IsNotFoundError(err) || errors.Is(err, store.ErrNotMember) {
				continue
			}
			if err != nil {
				return res, NewServiceError("reconcile", "repair", err)
			}
			res.EnrollmentsPulled++
		}
	}

	for _, id := range report.OrphanClasses {
		orphan, err := r.classOrphaned(ctx, id)
		if err != nil {
			return res, NewServiceError("reconcile", "repair", err)
		}
		if !orphan {
			continue
		}
		err = r.stores.Classes.Delete(ctx, id)
		if store.IsNotFoundError(err) {
			continue
		}
		if err != nil {
			return res, NewServiceError("reconcile", "repair", err)
		}
		res.ClassesDeleted++
	}

	log.Info("reconciliation repair finished",
		"routines_deleted", res.RoutinesDeleted,
		"enrollments_pulled", res.EnrollmentsPulled,
		"classes_deleted", res.ClassesDeleted)
	return res, nil
}

// routineOrphaned reloads the routine and reports whether its student pair
// still resolves to nobody. A routine that is already gone is not orphaned.
func (r *Reconciler) routineOrphaned(ctx context.Context, id string) (bool, error) {
	rt, err := r.stores.Routines.GetByID(ctx, id)
	if store.IsNotFoundError(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	_, err = r.stores.Students.FindByNameAndDNI(ctx, rt.NombreAlumno, rt.DNIAlumno)
	if store.IsNotFoundError(err) {
		return true, nil
	}
	return false, err
}

// classOrphaned reloads the class and reports whether its teacher pair still
// resolves to nobody.
func (r *Reconciler) classOrphaned(ctx context.Context, id string) (bool, error) {
	c, err := r.stores.Classes.GetByID(ctx, id)
	if store.IsNotFoundError(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	_, err = r.stores.Teachers.FindByNameAndEmail(ctx, c.NombreProfesor, c.EmailProfesor)
	if store.IsNotFoundError(err) {
		return true, nil
	}
	return false, err
}

// Run scans and, unless dryRun is set, repairs.
func (r *Reconciler) Run(ctx context.Context, dryRun bool) (*Report, *RepairResult, error) {
	report, err := r.Scan(ctx)
	if err != nil {
		return nil, nil, err
	}
	logger.FromContextOrDefault(ctx, r.logger).Info("reconciliation scan finished",
		"orphan_routines", len(report.OrphanRoutines),
		"stale_enrollment_classes", len(report.StaleEnrollments),
		"orphan_classes", len(report.OrphanClasses),
		"dry_run", dryRun)

	if dryRun || report.Empty() {
		return report, &RepairResult{}, nil
	}
	res, err := r.Repair(ctx, report)
	return report, res, err
}
