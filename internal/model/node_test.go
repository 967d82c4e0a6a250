package model

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	pkg "covtree.dev/pkg/covtree/pkg"
)

// sampleTree builds module "app" > package "com.example" > file "App.java"
// > class "App" carrying line 8/2 and branch 2/2 leaves.
func sampleTree(t *testing.T) *Node {
	t.Helper()

	module := NewNode(Module, "app")
	packageNode := NewNode(Package, "com.example")
	fileNode := NewNode(File, "App.java")
	classNode := NewNode(Class, "App")

	require.NoError(t, module.AddChild(packageNode))
	require.NoError(t, packageNode.AddChild(fileNode))
	require.NoError(t, fileNode.AddChild(classNode))

	require.NoError(t, classNode.AddLeaf(NewLeaf(Line, NewCounter(8, 2))))
	require.NoError(t, classNode.AddLeaf(NewLeaf(Branch, NewCounter(2, 2))))

	return module
}

func TestNode_RootHasNoParent(t *testing.T) {
	module := sampleTree(t)

	require.True(t, module.IsRoot())
	require.False(t, module.HasParent())

	_, ok := module.Parent()
	require.False(t, ok)
}

func TestNode_AddChildSetsParentExactlyOnce(t *testing.T) {
	module := NewNode(Module, "app")
	child := NewNode(Package, "p")

	require.NoError(t, module.AddChild(child))

	parent, ok := child.Parent()
	require.True(t, ok)
	require.Same(t, module, parent)

	other := NewNode(Module, "other")
	require.ErrorIs(t, other.AddChild(child), ErrAlreadyAttached)
}

func TestNode_AddLeafRejectsStructuralMetrics(t *testing.T) {
	node := NewNode(Class, "App")

	require.ErrorIs(t, node.AddLeaf(NewLeaf(Class, NewCounter(1, 0))), ErrStructuralLeaf)
	require.Empty(t, node.Leaves())
}

func TestNode_Metrics(t *testing.T) {
	module := sampleTree(t)

	require.Equal(t, []Metric{Module, Package, File, Class, Line, Branch}, module.Metrics())
}

func TestNode_CoverageLeafMetricsAreAdditive(t *testing.T) {
	module := sampleTree(t)

	require.Equal(t, NewCounter(8, 2), module.Coverage(Line))
	require.Equal(t, NewCounter(2, 2), module.Coverage(Branch))
	require.Equal(t, Counter{}, module.Coverage(Instruction))
}

func TestNode_CoverageStructuralUnitIsKeyedOffLines(t *testing.T) {
	module := sampleTree(t)

	// The single class has covered lines, so every structural level above
	// it counts as one covered unit.
	require.Equal(t, NewCounter(1, 0), module.Coverage(Class))
	require.Equal(t, NewCounter(1, 0), module.Coverage(File))
	require.Equal(t, NewCounter(1, 0), module.Coverage(Package))
	require.Equal(t, NewCounter(1, 0), module.Coverage(Module))
}

func TestNode_CoverageStructuralUnitMissedWithoutCoveredLines(t *testing.T) {
	module := NewNode(Module, "app")
	classNode := NewNode(Class, "Dead")

	require.NoError(t, module.AddChild(classNode))
	require.NoError(t, classNode.AddLeaf(NewLeaf(Line, NewCounter(0, 5))))

	require.Equal(t, NewCounter(0, 1), module.Coverage(Class))
	require.Equal(t, NewCounter(0, 1), module.Coverage(Module))
}

func TestNode_CoverageTotalInvariant(t *testing.T) {
	module := sampleTree(t)

	for _, metric := range module.Metrics() {
		coverage := module.Coverage(metric)
		require.Equal(t, coverage.Covered()+coverage.Missed(), coverage.Total())
	}
}

func TestNode_MetricsDistribution(t *testing.T) {
	module := sampleTree(t)

	distribution := module.MetricsDistribution()

	require.Len(t, distribution, 6)
	require.Equal(t, NewCounter(8, 2), distribution[Line])
	require.Equal(t, NewCounter(1, 0), distribution[Class])
}

func TestNode_MetricsPercentages(t *testing.T) {
	module := sampleTree(t)

	percentages := module.MetricsPercentages()

	require.True(t, percentages[Line].Equal(pkg.NewRatio(8, 10)))
	require.True(t, percentages[Branch].Equal(pkg.NewRatio(1, 2)))
	require.True(t, percentages[Module].Equal(pkg.NewRatio(1, 1)))
}

func TestNode_PrintCoverageFor(t *testing.T) {
	module := sampleTree(t)

	require.Equal(t, "80.00%", module.PrintCoverageFor(Line, language.English))
	require.Equal(t, "50,00%", module.PrintCoverageFor(Branch, language.German))
}

func TestNode_SelfDeltaIsZero(t *testing.T) {
	module := sampleTree(t)

	for metric, delta := range module.ComputeDelta(module) {
		require.True(t, delta.IsZero(), "self delta for %s must be zero", metric)
	}
}

func TestNode_DeltaAgainstWeakerReference(t *testing.T) {
	module := sampleTree(t)

	reference := sampleTree(t)
	weaker, ok := reference.Find(Class, "App")
	require.True(t, ok)
	weaker.leaves = []Leaf{NewLeaf(Line, NewCounter(5, 5)), NewLeaf(Branch, NewCounter(2, 2))}

	deltas := module.ComputeDelta(reference)

	require.True(t, deltas[Line].Equal(pkg.NewRatio(3, 10)))
	require.True(t, deltas[Branch].IsZero())
}

func TestNode_DeltaTreatsMissingReferenceMetricAsZero(t *testing.T) {
	module := sampleTree(t)
	reference := NewNode(Module, "app")

	deltas := module.ComputeDelta(reference)

	require.True(t, deltas[Line].Equal(pkg.NewRatio(8, 10)))
}

func TestNode_DeltaDegradesToApproximationOnOverflow(t *testing.T) {
	// Two coprime totals whose product exceeds int64, so the exact
	// percentage subtraction cannot be represented.
	const (
		mersennePrime = int64(1)<<61 - 1
		largePrime    = int64(4611686018427387847)
	)

	_, err := pkg.NewRatio(1, mersennePrime).Sub(pkg.NewRatio(1, largePrime))
	require.ErrorIs(t, err, pkg.ErrRatioOverflow)

	module := NewNode(Module, "app")
	require.NoError(t, module.AddLeaf(NewLeaf(Line, NewCounter(1, mersennePrime-1))))

	reference := NewNode(Module, "app")
	require.NoError(t, reference.AddLeaf(NewLeaf(Line, NewCounter(1, largePrime-1))))

	deltas := module.ComputeDelta(reference)

	lineDelta, ok := deltas[Line]
	require.True(t, ok)

	expected := 1/float64(mersennePrime) - 1/float64(largePrime)
	require.InDelta(t, expected, lineDelta.Float64(), 1e-9)
}

func TestNode_GetAll(t *testing.T) {
	module := sampleTree(t)

	packages := module.GetAll(Package)
	require.Len(t, packages, 1)
	require.Equal(t, "com.example", packages[0].Name())

	require.Empty(t, module.GetAll(Method))
}

func TestNode_GetAllPanicsOnLeafMetric(t *testing.T) {
	module := sampleTree(t)

	require.Panics(t, func() { module.GetAll(Line) })
}

func TestNode_GetAllPanicsOnUnknownMetric(t *testing.T) {
	module := sampleTree(t)

	require.Panics(t, func() { module.GetAll(Metric(42)) })
}

func TestNode_Find(t *testing.T) {
	module := sampleTree(t)

	found, ok := module.Find(Class, "App")
	require.True(t, ok)
	require.Equal(t, Class, found.Metric())

	_, ok = module.Find(Class, "Missing")
	require.False(t, ok)
}

func TestNode_FindPrefersSelf(t *testing.T) {
	module := sampleTree(t)

	found, ok := module.Find(Module, "app")
	require.True(t, ok)
	require.Same(t, module, found)
}

func TestNode_FindByNameHash(t *testing.T) {
	module := sampleTree(t)

	found, ok := module.FindByNameHash(File, NameHash("App.java"))
	require.True(t, ok)
	require.Equal(t, "App.java", found.Name())

	_, ok = module.FindByNameHash(File, NameHash("Other.java"))
	require.False(t, ok)
}

func TestNode_FindByNameHashMatchesPathToo(t *testing.T) {
	module := sampleTree(t)

	fileNode, ok := module.Find(File, "App.java")
	require.True(t, ok)

	found, ok := module.FindByNameHash(File, NameHash(fileNode.Path()))
	require.True(t, ok)
	require.Same(t, fileNode, found)
}

func TestNode_Path(t *testing.T) {
	module := sampleTree(t)

	require.Equal(t, "", module.Path())

	fileNode, ok := module.Find(File, "App.java")
	require.True(t, ok)
	require.Equal(t, "com/example/App.java", fileNode.Path())
}

func TestNode_PathCoalescesDefaultPackage(t *testing.T) {
	module := NewNode(Module, "app")
	packageNode := NewNode(Package, DefaultPackageName)
	fileNode := NewNode(File, "Main.java")

	require.NoError(t, module.AddChild(packageNode))
	require.NoError(t, packageNode.AddChild(fileNode))

	require.Equal(t, "", packageNode.Path())
	require.Equal(t, "Main.java", fileNode.Path())
}

func TestNode_ParentName(t *testing.T) {
	module := sampleTree(t)

	require.Equal(t, "^", module.ParentName())

	fileNode, ok := module.Find(File, "App.java")
	require.True(t, ok)
	require.Equal(t, "com.example", fileNode.ParentName())
}

func TestNode_ParentNameCollapsesNestedPackages(t *testing.T) {
	module := sampleTree(t)
	module.SplitPackages()

	fileNode, ok := module.Find(File, "App.java")
	require.True(t, ok)
	require.Equal(t, "com.example", fileNode.ParentName())
}

func TestNode_SplitPackages(t *testing.T) {
	module := NewNode(Module, "app")
	packageNode := NewNode(Package, "a.b.c")
	classNode := NewNode(Class, "C")

	require.NoError(t, module.AddChild(packageNode))
	require.NoError(t, packageNode.AddChild(classNode))

	module.SplitPackages()

	a := module.Children()
	require.Len(t, a, 1)
	require.Equal(t, "a", a[0].Name())
	require.Equal(t, Package, a[0].Metric())

	b := a[0].Children()
	require.Len(t, b, 1)
	require.Equal(t, "b", b[0].Name())

	c := b[0].Children()
	require.Len(t, c, 1)
	require.Equal(t, "c", c[0].Name())

	require.Len(t, c[0].Children(), 1)
	require.Same(t, classNode, c[0].Children()[0])
}

func TestNode_SplitPackagesMergesSharedPrefixes(t *testing.T) {
	module := NewNode(Module, "app")
	first := NewNode(Package, "a.b")
	second := NewNode(Package, "a.c")

	require.NoError(t, module.AddChild(first))
	require.NoError(t, module.AddChild(second))

	module.SplitPackages()

	require.Len(t, module.Children(), 1)
	a := module.Children()[0]
	require.Equal(t, "a", a.Name())
	require.Len(t, a.Children(), 2)
	require.Equal(t, "b", a.Children()[0].Name())
	require.Equal(t, "c", a.Children()[1].Name())
}

func TestNode_SplitPackagesIsIdempotent(t *testing.T) {
	module := sampleTree(t)

	module.SplitPackages()
	once := module.CopyTree()

	module.SplitPackages()

	require.True(t, module.Equals(once))
}

func TestNode_SplitPackagesKeepsSingleSegmentNames(t *testing.T) {
	module := NewNode(Module, "app")
	packageNode := NewNode(Package, "flat")

	require.NoError(t, module.AddChild(packageNode))

	module.SplitPackages()

	require.Len(t, module.Children(), 1)
	require.Same(t, packageNode, module.Children()[0])
}

func TestNode_SplitPackagesIgnoresNonModuleNodes(t *testing.T) {
	packageNode := NewNode(Package, "a.b")
	child := NewNode(File, "F.java")
	require.NoError(t, packageNode.AddChild(child))

	packageNode.SplitPackages()

	require.Len(t, packageNode.Children(), 1)
	require.Same(t, child, packageNode.Children()[0])
}

func TestNode_CopyTreeIsStructurallyEqual(t *testing.T) {
	module := sampleTree(t)

	copied := module.CopyTree()

	require.True(t, module.Equals(copied))
	require.True(t, copied.IsRoot())
}

func TestNode_CopyTreeIsIndependent(t *testing.T) {
	module := sampleTree(t)

	copied := module.CopyTree()
	require.NoError(t, copied.AddChild(NewNode(Package, "extra")))

	require.False(t, module.Equals(copied))
	require.Len(t, module.Children(), 1)
}

func TestNode_EqualsIgnoresParent(t *testing.T) {
	standalone := NewNode(Class, "App")
	require.NoError(t, standalone.AddLeaf(NewLeaf(Line, NewCounter(8, 2))))
	require.NoError(t, standalone.AddLeaf(NewLeaf(Branch, NewCounter(2, 2))))

	module := sampleTree(t)
	attached, ok := module.Find(Class, "App")
	require.True(t, ok)

	require.True(t, attached.Equals(standalone))
}

func TestNode_EqualsDetectsDifferences(t *testing.T) {
	module := sampleTree(t)

	require.False(t, module.Equals(nil))
	require.False(t, module.Equals(NewNode(Module, "app")))

	renamed := sampleTree(t)
	renamed.name = "other"
	require.False(t, module.Equals(renamed))

	differentLeaf := sampleTree(t)
	classNode, ok := differentLeaf.Find(Class, "App")
	require.True(t, ok)
	classNode.leaves[0] = NewLeaf(Line, NewCounter(7, 3))
	require.False(t, module.Equals(differentLeaf))
}

func TestNode_String(t *testing.T) {
	require.Equal(t, "[Class] App", NewNode(Class, "App").String())
}
