package abaqus

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evaries/cantilever/internal/pipeline"
	"github.com/evaries/cantilever/internal/recipe"
)

func render(t *testing.T, r *recipe.Recipe) string {
	t.Helper()
	var buf bytes.Buffer
	s := NewScript(&buf)
	_, err := pipeline.Run(context.Background(), r, s, pipeline.Options{})
	require.NoError(t, err)
	require.NoError(t, s.Err())
	return buf.String()
}

func TestScriptDefaultRecipe(t *testing.T) {
	out := render(t, recipe.Default())

	want := []string{
		"from abaqusConstants import *",
		"mdb.models.changeKey(fromName='Model-1', toName='Cantilever Beam')",
		"cantileverBeamModel = mdb.models['Cantilever Beam']",
		"beamCSProfileSketch = cantileverBeamModel.ConstrainedSketch(name='Beam CS Profile', sheetSize=5)",
		"beamCSProfileSketch.rectangle(point1=(0.1, 0.1), point2=(0.3, -0.1))",
		"beamPart = cantileverBeamModel.Part(name='Beam', dimensionality=THREE_D, type=DEFORMABLE_BODY)",
		"beamPart.BaseSolidExtrude(sketch=beamCSProfileSketch, depth=5)",
		"aisi1005SteelMaterial.Density(table=((7872, ), ))",
		"aisi1005SteelMaterial.Elastic(table=((2e+11, 0.29), ))",
		"beamSection = cantileverBeamModel.HomogeneousSolidSection(name='Beam Section', material='AISI 1005 Steel', thickness=1)",
		"beamPartRegion = regionToolset.Region(cells=beamPart.cells)",
		"beamPart.SectionAssignment(region=beamPartRegion, sectionName='Beam Section')",
		"beamInstance = cantileverBeamModel.rootAssembly.Instance(name='Beam Instance', part=beamPart, dependent=ON)",
		"applyLoadStep = cantileverBeamModel.StaticStep(name='Apply Load', previous='Initial', description='Load is applied during this step')",
		"cantileverBeamModel.fieldOutputRequests.changeKey(fromName='F-Output-1', toName='Selected Field Outputs')",
		"cantileverBeamModel.fieldOutputRequests['Selected Field Outputs'].setValues(variables=('S', 'E', 'PEMAG', 'U', 'RF', 'CF'))",
		"del cantileverBeamModel.historyOutputRequests['H-Output-1']",
		"face = beamInstance.faces.findAt(((0.2, 0.1, 2.5), ))",
		"faceRegion = regionToolset.Region(side1Faces=face)",
		"cantileverBeamModel.Pressure(name='Uniform Applied Pressure', createStepName='Apply Load', region=faceRegion, distributionType=UNIFORM, magnitude=10, amplitude=UNSET)",
		"face2 = beamInstance.faces.findAt(((0.2, 0, 0), ))",
		"cantileverBeamModel.EncastreBC(name='Encaster one end', createStepName='Initial', region=face2Region)",
		"cell = beamPart.cells.findAt(((0.2, 0, 2.5), ))",
		"c3d8rElemType = mesh.ElemType(elemCode=C3D8R, elemLibrary=EXPLICIT, kinematicSplit=AVERAGE_STRAIN, secondOrderAccuracy=OFF, hourglassControl=DEFAULT, distortionControl=DEFAULT)",
		"beamPart.setElementType(regions=(cell, ), elemTypes=(c3d8rElemType, ))",
		"beamPart.seedPart(size=0.1, deviationFactor=0.1)",
		"beamPart.generateMesh()",
		"cantileverBeamJob = mdb.Job(name='CantileverBeamJob', model='Cantilever Beam', type=ANALYSIS, explicitPrecision=SINGLE",
		"numDomains=1, userSubroutine='', numCpus=1, memory=50, memoryUnits=PERCENTAGE",
		"cantileverBeamJob.submit(consistencyChecking=OFF)",
		"cantileverBeamJob.waitForCompletion()",
		"beamResultsViewport = session.Viewport(name='Beam Results Viewport')",
		"cantileverBeamJobOdb = session.openOdb(name='CantileverBeamJob.odb')",
		"beamResultsViewport.odbDisplay.display.setValues(plotState=(DEFORMED, ))",
	}
	last := -1
	for _, line := range want {
		idx := strings.Index(out, line)
		require.GreaterOrEqual(t, idx, 0, "missing line: %s\n%s", line, out)
		assert.Greater(t, idx, last, "out of order: %s", line)
		last = idx
	}
}

func TestScriptIndependentInstanceMeshesAssembly(t *testing.T) {
	r := recipe.Default()
	r.Instance.Dependent = false
	out := render(t, r)

	assert.Contains(t, out, "dependent=OFF")
	assert.Contains(t, out, "cell = beamInstance.cells.findAt(((0.2, 0, 2.5), ))")
	assert.Contains(t, out, "cantileverBeamModel.rootAssembly.seedPartInstance(regions=(beamInstance, ), size=0.1, deviationFactor=0.1)")
	assert.Contains(t, out, "cantileverBeamModel.rootAssembly.generateMesh(regions=(beamInstance, ))")
	assert.NotContains(t, out, "beamPart.seedPart(")
}

func TestScriptSkipsRenameWhenNamesMatch(t *testing.T) {
	r := recipe.Default()
	r.Model.Source = r.Model.Name
	out := render(t, r)
	assert.NotContains(t, out, "mdb.models.changeKey")
}

func TestScriptEscapesNames(t *testing.T) {
	r := recipe.Default()
	r.Load.Name = "Owner's pressure"
	out := render(t, r)
	assert.Contains(t, out, `name='Owner\'s pressure'`)
}

type failingWriter struct{ n int }

func (w *failingWriter) Write(p []byte) (int, error) {
	if w.n == 0 {
		return 0, errors.New("disk full")
	}
	w.n--
	return len(p), nil
}

func TestScriptStickyWriteError(t *testing.T) {
	s := NewScript(&failingWriter{n: 1})
	_, err := s.RenameModel(recipe.Default().Model)
	assert.ErrorContains(t, err, "disk full")
	assert.ErrorContains(t, s.GenerateMesh("beamPart"), "disk full")
	assert.Equal(t, err, s.Err())
}
