package renderer

const terrainVertex = `
layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aNormal;
layout (location = 2) in vec2 aTexCoord;
layout (location = 3) in vec4 aBlend;

uniform mat4 uViewProj;

out vec3 vWorld;
out vec3 vNormal;
out vec4 vBlend;

void main() {
	vWorld = aPos;
	vNormal = aNormal;
	vBlend = aBlend;
	gl_Position = uViewProj * vec4(aPos, 1.0);
}
`

const terrainFragment = `
in vec3 vWorld;
in vec3 vNormal;
in vec4 vBlend;

uniform vec3 uColors[4];
uniform vec3 uLightDir;
uniform vec3 uEye;
uniform vec3 uFogColor;
uniform float uFogFar;

out vec4 FragColor;

void main() {
	vec3 base = uColors[0] * vBlend.x + uColors[1] * vBlend.y +
		uColors[2] * vBlend.z + uColors[3] * vBlend.w;
	float diffuse = max(dot(normalize(vNormal), -uLightDir), 0.0);
	vec3 color = base * (0.35 + 0.65 * diffuse);
	float fog = clamp(length(vWorld - uEye) / uFogFar, 0.0, 1.0);
	FragColor = vec4(mix(color, uFogColor, fog * fog), 1.0);
}
`

const shapeVertex = `
layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aNormal;

uniform mat4 uModel;
uniform mat4 uViewProj;

out vec3 vNormal;

void main() {
	vNormal = mat3(uModel) * aNormal;
	gl_Position = uViewProj * uModel * vec4(aPos, 1.0);
}
`

const shapeFragment = `
in vec3 vNormal;

uniform vec4 uColor;
uniform vec3 uLightDir;

out vec4 FragColor;

void main() {
	float diffuse = max(dot(normalize(vNormal), -uLightDir), 0.0);
	FragColor = vec4(uColor.rgb * (0.4 + 0.6 * diffuse), uColor.a);
}
`

const lineVertex = `
layout (location = 0) in vec3 aPos;

uniform mat4 uViewProj;

void main() {
	gl_Position = uViewProj * vec4(aPos, 1.0);
}
`

const lineFragment = `
uniform vec4 uColor;

out vec4 FragColor;

void main() {
	FragColor = uColor;
}
`

// overlayVertex draws one screen covering triangle from gl_VertexID.
const overlayVertex = `
void main() {
	vec2 p = vec2((gl_VertexID << 1) & 2, gl_VertexID & 2);
	gl_Position = vec4(p * 2.0 - 1.0, 0.0, 1.0);
}
`

const overlayFragment = `
uniform vec4 uColor;

out vec4 FragColor;

void main() {
	FragColor = uColor;
}
`
