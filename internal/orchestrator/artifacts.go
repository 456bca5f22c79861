package orchestrator

// Canned artifacts stored on the informational role tasks. These simulate
// the design contribution of each role; nothing executes them.

const databaseArtifact = `-- City Buildings Database Schema
CREATE TABLE IF NOT EXISTS buildings (
  id INT AUTO_INCREMENT PRIMARY KEY,
  project_id INT NOT NULL,
  name VARCHAR(255) NOT NULL,
  type ENUM('office', 'park', 'residential', 'commercial') NOT NULL,
  phase INT NOT NULL,
  status ENUM('planned', 'under_construction', 'completed') DEFAULT 'planned',
  position_x FLOAT NOT NULL,
  position_y FLOAT NOT NULL,
  position_z FLOAT NOT NULL,
  width FLOAT NOT NULL,
  height FLOAT NOT NULL,
  depth FLOAT NOT NULL,
  color VARCHAR(7) NOT NULL,
  created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
  INDEX idx_project_phase (project_id, phase),
  INDEX idx_spatial (position_x, position_z)
);

-- Spatial query example
-- SELECT * FROM buildings WHERE
--   position_x BETWEEN -10 AND 10 AND
--   position_z BETWEEN -10 AND 10;`

const backendArtifact = `// City Management API with Phase Support
import express from 'express';
import { db } from './database';

const app = express();

// Get all buildings by phase
app.get('/api/buildings/phase/:phase', async (req, res) => {
  const { phase } = req.params;
  const buildings = await db.query(
    'SELECT * FROM buildings WHERE phase = ? ORDER BY created_at',
    [phase]
  );
  res.json(buildings);
});

// Get buildings in spatial range
app.get('/api/buildings/area', async (req, res) => {
  const { minX, maxX, minZ, maxZ } = req.query;
  const buildings = await db.query(
    'SELECT * FROM buildings WHERE position_x BETWEEN ? AND ? AND position_z BETWEEN ? AND ?',
    [minX, maxX, minZ, maxZ]
  );
  res.json(buildings);
});

// Create new building
app.post('/api/buildings', async (req, res) => {
  const { name, type, phase, position, size, color } = req.body;
  const result = await db.insert('buildings', {
    name, type, phase,
    position_x: position.x,
    position_y: position.y,
    position_z: position.z,
    width: size.width,
    height: size.height,
    depth: size.depth,
    color,
    status: 'under_construction'
  });
  res.json({ success: true, id: result.insertId });
});`

const frontendArtifact = `// Three.js City Visualization with Phased Construction
import * as THREE from 'three';
import { OrbitControls } from 'three/examples/jsm/controls/OrbitControls';

class CityVisualization {
  constructor(container) {
    this.scene = new THREE.Scene();
    this.scene.background = new THREE.Color(0x0a0a0a);
    this.scene.fog = new THREE.Fog(0x0a0a0a, 50, 200);

    this.camera = new THREE.PerspectiveCamera(
      60,
      container.clientWidth / container.clientHeight,
      0.1,
      1000
    );
    this.camera.position.set(30, 25, 30);

    this.renderer = new THREE.WebGLRenderer({ antialias: true });
    this.renderer.setSize(container.clientWidth, container.clientHeight);
    container.appendChild(this.renderer.domElement);

    this.controls = new OrbitControls(this.camera, this.renderer.domElement);

    const ambientLight = new THREE.AmbientLight(0xffffff, 0.4);
    this.scene.add(ambientLight);

    const dirLight = new THREE.DirectionalLight(0xffffff, 0.8);
    dirLight.position.set(20, 40, 20);
    this.scene.add(dirLight);

    const gridHelper = new THREE.GridHelper(100, 50, 0x10b981, 0x1a1a1a);
    this.scene.add(gridHelper);

    this.buildings = new Map();
    this.animate();
  }

  addBuilding(building) {
    const geometry = new THREE.BoxGeometry(
      building.size.width,
      building.size.height,
      building.size.depth
    );
    const material = new THREE.MeshPhongMaterial({
      color: building.color,
      emissive: building.color,
      emissiveIntensity: 0.2
    });
    const mesh = new THREE.Mesh(geometry, material);
    mesh.position.set(
      building.position.x,
      building.size.height / 2,
      building.position.z
    );
    mesh.scale.y = 0.01;
    this.animateConstruction(mesh);
    this.scene.add(mesh);
    this.buildings.set(building.id, mesh);
  }

  animateConstruction(mesh) {
    const duration = 2000;
    const start = Date.now();
    const animate = () => {
      const elapsed = Date.now() - start;
      const progress = Math.min(elapsed / duration, 1);
      mesh.scale.y = progress;
      if (progress < 1) requestAnimationFrame(animate);
    };
    animate();
  }

  animate() {
    requestAnimationFrame(() => this.animate());
    this.controls.update();
    this.renderer.render(this.scene, this.camera);
  }
}`
